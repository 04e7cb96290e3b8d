package response

// Message is the body for mutations whose payload is a confirmation plus the
// affected entity.
type Message struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
