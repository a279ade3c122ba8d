package entity

// Attachment is a file attached to a chat message.
type Attachment struct {
	URL      string
	Filename string
}

// IncomingMessage is the platform-neutral view of a chat message. The
// delivery layer builds one of these per message; the core never talks
// to the chat platform directly.
type IncomingMessage struct {
	ChannelID   int64
	AuthorID    int64
	AuthorName  string
	Text        string
	Attachments []Attachment
}

// LogCandidate pairs a raw-content location with the human-facing page
// it was derived from.
type LogCandidate struct {
	FetchURL   string
	DisplayURL string
}

// AnalysisReport is the remote analyzer's verdict on a log. All three
// categories are mandatory in the wire format; a response missing any
// of them is rejected before an AnalysisReport is built.
type AnalysisReport struct {
	Critical []string
	Warning  []string
	Info     []string
}
