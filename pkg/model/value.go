package model

// FileRef describes one uploaded file. Only metadata is kept; file contents
// never enter the form model.
type FileRef struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// Value is the current content of a field. Text, date and select fields use
// Text (dates as YYYY-MM-DD); file fields use Files, mirroring a browser
// FileList where only the first entry is inspected by rules.
type Value struct {
	Text  string    `json:"text,omitempty"`
	Files []FileRef `json:"files,omitempty"`
}

// Text wraps a plain string value.
func Text(s string) Value {
	return Value{Text: s}
}

// Files wraps an upload list.
func Files(files ...FileRef) Value {
	if len(files) == 0 {
		return Value{}
	}
	return Value{Files: append([]FileRef(nil), files...)}
}

// IsEmpty reports whether the value is absent: an empty string and no files.
func (v Value) IsEmpty() bool {
	return v.Text == "" && len(v.Files) == 0
}

// FirstFile returns the first uploaded file, if any.
func (v Value) FirstFile() (FileRef, bool) {
	if len(v.Files) == 0 {
		return FileRef{}, false
	}
	return v.Files[0], true
}

// Display returns the value as shown in a submission record: the text, or the
// first file's name for uploads.
func (v Value) Display() string {
	if file, ok := v.FirstFile(); ok {
		return file.Name
	}
	return v.Text
}
