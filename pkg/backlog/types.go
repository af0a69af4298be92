package backlog

// DocumentSummary is one row of the paged document list endpoint. The fields
// are immutable once fetched; a document's identity is its ID.
type DocumentSummary struct {
	ID        string `json:"id"`
	ProjectID int    `json:"projectId"`
	Title     string `json:"title"`
	ParentID  string `json:"parentId"`
	StatusID  int    `json:"statusId"`
	Created   string `json:"created"`
	Updated   string `json:"updated"`
}

// Document is the detail response for a single document: the summary fields
// plus the Markdown body and the attachments in server order. The Backlog API
// has no dedicated attachment-list endpoint; the array is part of this
// response.
type Document struct {
	DocumentSummary
	Content     string       `json:"content"`
	Attachments []Attachment `json:"attachments"`
}

// Attachment describes one file attached to a document. ID is the download
// reference used by the attachment endpoint.
type Attachment struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// projectStatus is the slice element of the project statuses endpoint, used
// only to resolve the numeric project id from the configured project key.
type projectStatus struct {
	ID        int `json:"id"`
	ProjectID int `json:"projectId"`
}
