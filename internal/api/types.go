package api

// ArticleView describes a cached article in a transport-friendly format.
type ArticleView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	Source      string `json:"source,omitempty"`
	Author      string `json:"author,omitempty"`
	PublishedAt string `json:"publishedAt,omitempty"`
	FetchedAt   string `json:"fetchedAt,omitempty"`
}

// DispatchView summarizes an archived dispatch document.
type DispatchView struct {
	Path    string   `json:"path"`
	Title   string   `json:"title"`
	Date    string   `json:"date"`
	Time    string   `json:"time,omitempty"`
	Source  string   `json:"source,omitempty"`
	Tags    []string `json:"tags"`
	Voice   string   `json:"voice"`
	Summary string   `json:"summary,omitempty"`
}

// FetchResponse reports the outcome of a news fetch.
type FetchResponse struct {
	BatchID  string        `json:"batchId"`
	Count    int           `json:"count"`
	Articles []ArticleView `json:"articles"`
}

// GenerateResult records one successfully generated dispatch.
type GenerateResult struct {
	ArticleID string `json:"articleId"`
	Title     string `json:"title"`
	Path      string `json:"path"`
}

// GenerateFailure records one article that could not be dispatched.
type GenerateFailure struct {
	ArticleID string `json:"articleId"`
	Error     string `json:"error"`
}

// GenerateReport aggregates batch generation outcomes. A batch succeeds
// partially: failures are reported per article instead of aborting the run.
type GenerateReport struct {
	Generated []GenerateResult  `json:"generated"`
	Failed    []GenerateFailure `json:"failed,omitempty"`
}

// DispatchListResponse wraps a collection of dispatch summaries.
type DispatchListResponse struct {
	Dispatches []DispatchView `json:"dispatches"`
}

// DispatchDocumentResponse wraps a full dispatch document.
type DispatchDocumentResponse struct {
	Dispatch DispatchView `json:"dispatch"`
	Body     string       `json:"body"`
}
