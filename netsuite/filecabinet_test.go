package netsuite

import (
	"bytes"
	"context"
	"encoding/base64"
	"net/http"
	"testing"
)

func TestUploadFile(t *testing.T) {
	content := []byte("%PDF-1.4 fake invoice body")

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		op := decodeRequest(t, r)
		if op.Tag != "add" {
			t.Errorf("operation = %q, want add", op.Tag)
		}
		record := op.SelectElement("record")
		if record == nil {
			t.Fatal("add carries no record")
		}
		if got := record.SelectAttrValue("xsi:type", ""); got != "docFilecabinet:File" {
			t.Errorf("record xsi:type = %q", got)
		}
		if got := childText(record, "name"); got != "invoice-1042.pdf" {
			t.Errorf("name = %q", got)
		}
		if got := childText(record, "content"); got != base64.StdEncoding.EncodeToString(content) {
			t.Errorf("content = %q, want base64 of the payload", got)
		}
		folder := record.SelectElement("folder")
		if folder == nil || folder.SelectAttrValue("internalId", "") != "310" {
			t.Error("folder reference missing or wrong")
		}
		if got := childText(record, "fileType"); got != "_PDF" {
			t.Errorf("fileType = %q, want _PDF", got)
		}

		respondXML(w, `
    <addResponse xmlns="urn:messages_2017_2.platform.webservices.netsuite.com">
      <writeResponse>
        <platformCore:status xmlns:platformCore="`+nsCore+`" isSuccess="true"/>
        <baseRef xmlns:platformCore="`+nsCore+`"
                 xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
                 xsi:type="platformCore:RecordRef" internalId="901" type="file"/>
      </writeResponse>
    </addResponse>`)
	})

	ref, err := c.UploadFile(context.Background(), FileUpload{
		Name:      "invoice-1042.pdf",
		Content:   content,
		FolderID:  "310",
		MediaType: "_PDF",
	})
	if err != nil {
		t.Fatalf("UploadFile() error = %v", err)
	}
	if ref.InternalID != "901" {
		t.Errorf("ref.InternalID = %q, want 901", ref.InternalID)
	}
	if ref.Type != "file" {
		t.Errorf("ref.Type = %q, want file", ref.Type)
	}
}

func TestUploadFile_NeedsName(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should never reach the server")
	})

	if _, err := c.UploadFile(context.Background(), FileUpload{Content: []byte("x")}); err == nil {
		t.Error("UploadFile() without a name should fail")
	}
}

func TestDownloadFile(t *testing.T) {
	content := []byte("hello,world\n1,2\n")

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		op := decodeRequest(t, r)
		if op.Tag != "get" {
			t.Errorf("operation = %q, want get", op.Tag)
		}
		ref := op.SelectElement("baseRef")
		if ref == nil {
			t.Fatal("get carries no baseRef")
		}
		if got := ref.SelectAttrValue("type", ""); got != "file" {
			t.Errorf("baseRef type = %q, want file", got)
		}
		if got := ref.SelectAttrValue("internalId", ""); got != "901" {
			t.Errorf("baseRef internalId = %q, want 901", got)
		}

		respondXML(w, `
    <getResponse xmlns="urn:messages_2017_2.platform.webservices.netsuite.com">
      <readResponse>
        <platformCore:status xmlns:platformCore="`+nsCore+`" isSuccess="true"/>
        <record xmlns:docFilecabinet="urn:filecabinet_2017_2.documents.webservices.netsuite.com"
                xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
                xsi:type="docFilecabinet:File" internalId="901">
          <docFilecabinet:name>export.csv</docFilecabinet:name>
          <docFilecabinet:fileType>_CSV</docFilecabinet:fileType>
          <docFilecabinet:content>`+base64.StdEncoding.EncodeToString(content)+`</docFilecabinet:content>
        </record>
      </readResponse>
    </getResponse>`)
	})

	file, err := c.DownloadFile(context.Background(), "901")
	if err != nil {
		t.Fatalf("DownloadFile() error = %v", err)
	}
	if file.Name != "export.csv" {
		t.Errorf("Name = %q, want export.csv", file.Name)
	}
	if file.MediaType != "_CSV" {
		t.Errorf("MediaType = %q, want _CSV", file.MediaType)
	}
	if !bytes.Equal(file.Content, content) {
		t.Errorf("Content = %q, want the decoded payload", file.Content)
	}
}
