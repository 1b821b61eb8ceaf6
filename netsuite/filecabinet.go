package netsuite

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
)

// FileUpload describes a file to create in the file cabinet.
type FileUpload struct {
	Name    string
	Content []byte

	// FolderID is the internal id of the destination folder. Empty
	// leaves the choice to the account's default.
	FolderID string

	// MediaType is a NetSuite media type constant such as "_PDF" or
	// "_PLAINTEXT". Empty lets the server infer it from the name.
	MediaType string

	Description string
}

// UploadFile creates a file in the file cabinet and returns a reference
// to the new record. Content travels base64-encoded inside the envelope,
// so very large files are better served by NetSuite's REST upload.
func (c *Client) UploadFile(ctx context.Context, up FileUpload) (Reference, error) {
	if up.Name == "" {
		return Reference{}, errors.New("netsuite: file upload needs a name")
	}

	doc := c.Filecabinet()
	record := c.Messages().Element("record")
	doc.SetType(record, "File")
	record.AddChild(doc.Text("name", up.Name))
	record.AddChild(doc.Text("content", base64.StdEncoding.EncodeToString(up.Content)))
	if up.FolderID != "" {
		folder := doc.Element("folder")
		folder.CreateAttr("internalId", up.FolderID)
		record.AddChild(folder)
	}
	if up.MediaType != "" {
		record.AddChild(doc.Text("fileType", up.MediaType))
	}
	if up.Description != "" {
		record.AddChild(doc.Text("description", up.Description))
	}

	body := c.Messages().Element("add")
	body.AddChild(record)

	resp, err := c.Call(ctx, "add", body)
	if err != nil {
		return Reference{}, err
	}

	wr, err := Extract(resp, "body.writeResponse")
	if err != nil {
		return Reference{}, err
	}
	if err := checkStatus(wr); err != nil {
		return Reference{}, err
	}
	ref := wr.SelectElement("baseRef")
	if ref == nil {
		return Reference{}, errors.New("netsuite: write response carries no baseRef")
	}
	return referenceFrom(ref), nil
}

// FileContent is a file fetched from the file cabinet.
type FileContent struct {
	Name      string
	MediaType string
	Content   []byte
}

// DownloadFile fetches a file record by internal id and decodes its
// content.
func (c *Client) DownloadFile(ctx context.Context, internalID string) (*FileContent, error) {
	rec, err := c.Get(ctx, Reference{Type: "file", InternalID: internalID})
	if err != nil {
		return nil, err
	}

	data, err := base64.StdEncoding.DecodeString(rec.Text("content"))
	if err != nil {
		return nil, fmt.Errorf("netsuite: decode file content: %w", err)
	}
	return &FileContent{
		Name:      rec.Text("name"),
		MediaType: rec.Text("fileType"),
		Content:   data,
	}, nil
}
