package service

import "errors"

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrUnsupportedFileType  = errors.New("unsupported file type")
	ErrNoRecipient          = errors.New("no recipient configured for submission")
)
