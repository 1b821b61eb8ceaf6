package netsuite

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
)

// SearchResult is one page of search results.
type SearchResult struct {
	TotalRecords int
	PageSize     int
	TotalPages   int
	PageIndex    int

	// SearchID identifies the server-side result set for fetching
	// further pages with SearchMoreWithID.
	SearchID string

	Records []Record
}

// Search executes a search and returns its first page. searchRecord must
// be a searchRecord element carrying an xsi:type discriminator for the
// concrete search, e.g.
//
//	sr := client.Messages().Element("searchRecord")
//	client.Relationships().SetType(sr, "CustomerSearch")
func (c *Client) Search(ctx context.Context, searchRecord *etree.Element) (*SearchResult, error) {
	if searchRecord == nil {
		return nil, errors.New("netsuite: search needs a searchRecord")
	}

	body := c.Messages().Element("search")
	body.AddChild(searchRecord)

	resp, err := c.Call(ctx, "search", body)
	if err != nil {
		return nil, err
	}
	result, err := Extract(resp, "body.searchResult")
	if err != nil {
		return nil, err
	}
	return searchResultFrom(result)
}

// SearchMoreWithID fetches one page of a previously executed search.
// Pages are numbered from 1.
func (c *Client) SearchMoreWithID(ctx context.Context, searchID string, pageIndex int) (*SearchResult, error) {
	if searchID == "" {
		return nil, errors.New("netsuite: search id is required")
	}
	if pageIndex < 1 {
		return nil, fmt.Errorf("netsuite: page index %d out of range", pageIndex)
	}

	msgs := c.Messages()
	body := msgs.Element("searchMoreWithId")
	body.AddChild(msgs.Text("searchId", searchID))
	body.AddChild(msgs.Text("pageIndex", strconv.Itoa(pageIndex)))

	resp, err := c.Call(ctx, "searchMoreWithId", body)
	if err != nil {
		return nil, err
	}
	result, err := Extract(resp, "body.searchResult")
	if err != nil {
		return nil, err
	}
	return searchResultFrom(result)
}

func searchResultFrom(result *etree.Element) (*SearchResult, error) {
	if err := checkStatus(result); err != nil {
		return nil, err
	}

	sr := &SearchResult{SearchID: childText(result, "searchId")}

	var err error
	for _, f := range []struct {
		name string
		dst  *int
	}{
		{"totalRecords", &sr.TotalRecords},
		{"pageSize", &sr.PageSize},
		{"totalPages", &sr.TotalPages},
		{"pageIndex", &sr.PageIndex},
	} {
		if *f.dst, err = intOf(result, f.name); err != nil {
			return nil, err
		}
	}

	// recordList is absent entirely when the page is empty.
	if list := result.SelectElement("recordList"); list != nil {
		nodes := list.SelectElements("record")
		sr.Records = make([]Record, 0, len(nodes))
		for _, el := range nodes {
			sr.Records = append(sr.Records, Record{el: el})
		}
	}
	return sr, nil
}

// intOf reads an optional integer field. Absent means zero.
func intOf(el *etree.Element, name string) (int, error) {
	s := childText(el, name)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("netsuite: parse %s %q: %w", name, s, err)
	}
	return n, nil
}

// SearchStream represents a search being paged through in the background.
// Consume Records, then call Wait for the final error.
type SearchStream struct {
	// Records receives every matching record across all pages. The
	// channel closes when the last page is delivered, an error occurs,
	// or the stream is cancelled.
	Records <-chan Record

	// TotalRecords and TotalPages report the result set size as of the
	// first page.
	TotalRecords int
	TotalPages   int

	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// Wait blocks until the stream finishes and returns its final error.
// After Wait returns, Records is closed.
func (s *SearchStream) Wait() error {
	<-s.done
	return s.err
}

// Cancel stops paging. Records closes shortly after.
func (s *SearchStream) Cancel() {
	s.cancel()
}

// SearchAll executes a search and pages through the entire result set in
// the background, delivering records as each page arrives. The first page
// is fetched before SearchAll returns, so a rejected search fails fast.
// The caller is responsible for consuming Records and calling Wait.
func (c *Client) SearchAll(ctx context.Context, searchRecord *etree.Element) (*SearchStream, error) {
	first, err := c.Search(ctx, searchRecord)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	records := make(chan Record)
	stream := &SearchStream{
		Records:      records,
		TotalRecords: first.TotalRecords,
		TotalPages:   first.TotalPages,
		cancel:       cancel,
		done:         make(chan struct{}),
	}

	go func() {
		defer close(stream.done)
		defer close(records)
		defer cancel()

		page := first
		for {
			for _, rec := range page.Records {
				select {
				case records <- rec:
				case <-ctx.Done():
					stream.err = ctx.Err()
					return
				}
			}
			if page.SearchID == "" || page.PageIndex >= page.TotalPages {
				return
			}
			next, err := c.SearchMoreWithID(ctx, page.SearchID, page.PageIndex+1)
			if err != nil {
				stream.err = err
				return
			}
			page = next
		}
	}()

	return stream, nil
}
