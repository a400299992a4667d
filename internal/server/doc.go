// Package server exposes the job-application form over HTTP.
//
// Routes:
//
//	GET  /                             render the form for a new session
//	POST <form endpoint>               multipart submit through the session controller
//	POST /api/fields/{name}/validate   evaluate one field, JSON in and out
//	GET  /openapi.json                 the validated OpenAPI description
//	GET  /healthz                      liveness
//	GET  /assets/*                     embedded stylesheet
//
// Each rendered form carries a hidden session id. A session owns one field
// registry and one submission controller, so a second post for the same
// session while the first is still in flight is answered with 409.
package server
