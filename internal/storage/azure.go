package storage

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

// AzureImageStore keeps images as block blobs in one container.
type AzureImageStore struct {
	client    *azblob.Client
	container string
}

var _ ImageStore = (*AzureImageStore)(nil)

// NewAzureImageStore authenticates with the default Azure credential chain
// (environment, workload identity, managed identity, CLI).
func NewAzureImageStore(accountURL, container string) (*AzureImageStore, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load azure credential: %w", err)
	}
	return NewAzureImageStoreWithCredential(accountURL, container, cred)
}

func NewAzureImageStoreWithCredential(accountURL, container string, cred azcore.TokenCredential) (*AzureImageStore, error) {
	client, err := azblob.NewClient(accountURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}
	return &AzureImageStore{client: client, container: container}, nil
}

func newAzureImageStoreFromClient(client *azblob.Client, container string) *AzureImageStore {
	return &AzureImageStore{client: client, container: container}
}

func (s *AzureImageStore) Put(ctx context.Context, key, contentType string, data []byte) error {
	_, err := s.client.UploadBuffer(ctx, s.container, key, data, &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &contentType},
	})
	if err != nil {
		return fmt.Errorf("failed to upload blob %s: %w", key, err)
	}
	return nil
}

func (s *AzureImageStore) Open(ctx context.Context, key string) (*Object, error) {
	resp, err := s.client.DownloadStream(ctx, s.container, key, nil)
	if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to download blob %s: %w", key, err)
	}

	obj := &Object{Body: resp.Body, ContentType: "application/octet-stream"}
	if resp.ContentType != nil {
		obj.ContentType = *resp.ContentType
	}
	if resp.ContentLength != nil {
		obj.Size = *resp.ContentLength
	}
	return obj, nil
}

func (s *AzureImageStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteBlob(ctx, s.container, key, nil)
	if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound) {
		return ErrObjectNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete blob %s: %w", key, err)
	}
	return nil
}
