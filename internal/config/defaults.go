package config

const (
	defaultServerPort     = 8080
	defaultMaxUploadBytes = 8 << 20
)

// defaults returns the default configuration values. They are loaded first
// and can be overridden by the YAML file and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":             "127.0.0.1",
		"server.port":             defaultServerPort,
		"server.read_timeout":     "5s",
		"server.write_timeout":    "10s",
		"server.shutdown_timeout": "5s",
		"server.max_upload_bytes": defaultMaxUploadBytes,
		"server.session_ttl":      "30m",

		"log.level":  "info",
		"log.format": "json",
		"log.redact": []string{"email", "phone", "dob"},

		"form.definitions": "",
		"form.id":          "job-application",
		"form.templates":   "",

		"theme.name":    "jobform",
		"theme.variant": "",

		"submission.delay": "3s",
	}
}
