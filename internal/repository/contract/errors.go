package contract

import "errors"

// ErrConversationNotFound signals a message append against a
// conversation id that does not exist.
var ErrConversationNotFound = errors.New("conversation not found")

// ErrDocumentNotFound signals a lookup or delete against a document id
// that does not exist.
var ErrDocumentNotFound = errors.New("document not found")
