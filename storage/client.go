package storage

import "mime/multipart"

// Client abstracts image storage operations for dependency injection and testing.
type Client interface {
	UploadProductImage(file multipart.File, filename, contentType string) (string, error)
	UploadDealImage(file multipart.File, filename, contentType string) (string, error)
	DeleteFile(objectPath string) error
}

// FirebaseClient is the real implementation that delegates to package-level functions.
type FirebaseClient struct{}

func NewClient() Client {
	return &FirebaseClient{}
}

func (f *FirebaseClient) UploadProductImage(file multipart.File, filename, contentType string) (string, error) {
	return UploadProductImage(file, filename, contentType)
}

func (f *FirebaseClient) UploadDealImage(file multipart.File, filename, contentType string) (string, error) {
	return UploadDealImage(file, filename, contentType)
}

func (f *FirebaseClient) DeleteFile(objectPath string) error {
	return DeleteFile(objectPath)
}
