package dispatch

// Header is the structured preamble of a dispatch document. RawTags keeps the
// serialized JSON array exactly as it appears in the file; the tag filter in
// List is defined as a substring test over that serialized form.
type Header struct {
	Title       string
	Date        string
	Time        string
	Source      string
	Tags        []string
	RawTags     string
	Voice       string
	Summary     string
	ImpactZones []string
	ReadBy      string
}

// Summary is one index entry: a parsed header plus the file it came from.
type Summary struct {
	Path string
	Header
}

// Document is a fully loaded dispatch: header plus the markdown body.
type Document struct {
	Path   string
	Header Header
	Body   string
}

// Section markers rendered into every dispatch body. The narration script
// builder locates the Fort Frame text by scanning for FortFrameHeader.
const (
	FortFrameHeader = "## 🧠 Fort Frame"
	summaryHeader   = "## 📰 Summary"
	detailsHeader   = "## 📜 Article Details"
	listenHeader    = "## 🎧 Listen Now"
	readByMarker    = "FNAFI"
	signatureLine   = "*Generated by Fort Sentinel Dispatch System*"
)
