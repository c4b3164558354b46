package llmc

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleFunction  Role = "function"
)

// Metadata is the conversation-level descriptive block stored as YAML at the
// head of the container. Version, CreatedAt and Participants are always set
// after a successful parse, regardless of which producer wrote the file.
type Metadata struct {
	Version      string         `yaml:"version" json:"version"`
	CreatedAt    string         `yaml:"created_at" json:"created_at"`
	Participants []string       `yaml:"participants" json:"participants"`
	Title        string         `yaml:"title,omitempty" json:"title,omitempty"`
	Description  string         `yaml:"description,omitempty" json:"description,omitempty"`
	Tags         []string       `yaml:"tags,omitempty" json:"tags,omitempty"`
	Language     string         `yaml:"language,omitempty" json:"language,omitempty"`
	ModelInfo    map[string]any `yaml:"model_info,omitempty" json:"model_info,omitempty"`
}

// Message is a single turn in the conversation. Messages form a forest via
// ParentID; Attachments holds attachment IDs, not payloads.
type Message struct {
	ID          string         `json:"id"`
	Role        Role           `json:"role"`
	Content     string         `json:"content"`
	Timestamp   string         `json:"timestamp"`
	ParentID    string         `json:"parent_id,omitempty"`
	Attachments []string       `json:"attachments,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Attachment is a binary payload referenced by messages via its ID.
type Attachment struct {
	ID          string         `json:"id"`
	Filename    string         `json:"filename"`
	ContentType string         `json:"content_type"`
	Size        int64          `json:"size"`
	Data        []byte         `json:"data"`
	CreatedAt   string         `json:"created_at,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Conversation is the canonical in-memory representation of a container file.
// It owns its messages and attachments; entities are built fresh per parse.
type Conversation struct {
	Metadata    Metadata     `json:"metadata"`
	Messages    []Message    `json:"messages"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// ID prefixes used when synthesizing string identifiers for stores that key
// rows by integer surrogate IDs.
const (
	messageIDPrefix    = "msg_"
	attachmentIDPrefix = "att_"
)
