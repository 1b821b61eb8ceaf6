package netsuite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
)

// ErrNoIdentifiers is returned by record lookups called without a single
// internal or external id.
var ErrNoIdentifiers = errors.New("netsuite: at least one internal or external id is required")

// GetList fetches records of one type by id in a single request. Every
// requested id must resolve: a missing record fails the whole call with a
// *soap.StatusError rather than silently shrinking the result.
func (c *Client) GetList(ctx context.Context, recordType string, internalIDs, externalIDs []string) ([]Record, error) {
	if len(internalIDs) == 0 && len(externalIDs) == 0 {
		return nil, ErrNoIdentifiers
	}

	msgs := c.Messages()
	body := msgs.Element("getList")
	for _, ref := range c.baseRefs(recordType, internalIDs, externalIDs) {
		body.AddChild(ref)
	}

	resp, err := c.Call(ctx, "getList", body)
	if err != nil {
		return nil, err
	}

	list, err := Extract(resp, "body.readResponseList")
	if err != nil {
		return nil, err
	}
	if err := checkStatus(list); err != nil {
		return nil, err
	}
	return readResponses(list.SelectElements("readResponse"))
}

// Get fetches a single record. ref.Type is required, along with one of
// ref.InternalID or ref.ExternalID.
func (c *Client) Get(ctx context.Context, ref Reference) (Record, error) {
	if ref.Type == "" {
		return Record{}, errors.New("netsuite: record reference needs a type")
	}
	if ref.InternalID == "" && ref.ExternalID == "" {
		return Record{}, ErrNoIdentifiers
	}

	msgs := c.Messages()
	body := msgs.Element("get")
	body.AddChild(c.baseRef(ref.Type, ref.InternalID, ref.ExternalID))

	resp, err := c.Call(ctx, "get", body)
	if err != nil {
		return Record{}, err
	}

	rr, err := Extract(resp, "body.readResponse")
	if err != nil {
		return Record{}, err
	}
	if err := checkStatus(rr); err != nil {
		return Record{}, err
	}
	rec := rr.SelectElement("record")
	if rec == nil {
		return Record{}, fmt.Errorf("netsuite: read response carries no record")
	}
	return Record{el: rec}, nil
}

// baseRefs builds one polymorphic baseRef per id, internal ids first.
func (c *Client) baseRefs(recordType string, internalIDs, externalIDs []string) []*etree.Element {
	refs := make([]*etree.Element, 0, len(internalIDs)+len(externalIDs))
	for _, id := range internalIDs {
		refs = append(refs, c.baseRef(recordType, id, ""))
	}
	for _, id := range externalIDs {
		refs = append(refs, c.baseRef(recordType, "", id))
	}
	return refs
}

func (c *Client) baseRef(recordType, internalID, externalID string) *etree.Element {
	ref := c.Messages().Element("baseRef")
	c.Core().SetType(ref, "RecordRef")
	ref.CreateAttr("type", recordType)
	if internalID != "" {
		ref.CreateAttr("internalId", internalID)
	}
	if externalID != "" {
		ref.CreateAttr("externalId", externalID)
	}
	return ref
}

// ItemAvailability is one location's availability snapshot for an
// inventory item. Quantities are decimals: NetSuite items can be
// fractional and sums must not drift through float64.
type ItemAvailability struct {
	Item     Reference
	Location Reference

	// LastQtyAvailableChange is zero when the server omits it.
	LastQtyAvailableChange time.Time

	QuantityOnHand      decimal.Decimal
	QuantityOnOrder     decimal.Decimal
	QuantityCommitted   decimal.Decimal
	QuantityBackOrdered decimal.Decimal
	QuantityAvailable   decimal.Decimal
}

// GetItemAvailability reports per-location availability for the inventory
// items named by id. Items with no availability rows simply do not appear
// in the result; an account with none at all returns an empty slice.
func (c *Client) GetItemAvailability(ctx context.Context, internalIDs, externalIDs []string) ([]ItemAvailability, error) {
	if len(internalIDs) == 0 && len(externalIDs) == 0 {
		return nil, ErrNoIdentifiers
	}

	core := c.Core()
	item := c.Common().Element("item")
	for _, id := range internalIDs {
		ref := core.Element("recordRef")
		ref.CreateAttr("type", "inventoryItem")
		ref.CreateAttr("internalId", id)
		item.AddChild(ref)
	}
	for _, id := range externalIDs {
		ref := core.Element("recordRef")
		ref.CreateAttr("type", "inventoryItem")
		ref.CreateAttr("externalId", id)
		item.AddChild(ref)
	}

	msgs := c.Messages()
	filter := msgs.Element("itemAvailabilityFilter")
	filter.AddChild(item)
	body := msgs.Element("getItemAvailability")
	body.AddChild(filter)

	resp, err := c.Call(ctx, "getItemAvailability", body)
	if err != nil {
		return nil, err
	}

	result, err := Extract(resp, "body.getItemAvailabilityResult")
	if err != nil {
		return nil, err
	}
	if err := checkStatus(result); err != nil {
		return nil, err
	}

	// The list element is absent entirely when nothing matched.
	list := result.SelectElement("itemAvailabilityList")
	if list == nil {
		return nil, nil
	}

	rows := list.SelectElements("itemAvailability")
	out := make([]ItemAvailability, 0, len(rows))
	for _, row := range rows {
		ia, err := parseItemAvailability(row)
		if err != nil {
			return nil, err
		}
		out = append(out, ia)
	}
	return out, nil
}

func parseItemAvailability(el *etree.Element) (ItemAvailability, error) {
	ia := ItemAvailability{
		Item:     referenceFrom(el.SelectElement("item")),
		Location: referenceFrom(el.SelectElement("locationId")),
	}

	if s := childText(el, "lastQtyAvailableChange"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return ItemAvailability{}, fmt.Errorf("netsuite: parse lastQtyAvailableChange %q: %w", s, err)
		}
		ia.LastQtyAvailableChange = t
	}

	var err error
	for _, q := range []struct {
		name string
		dst  *decimal.Decimal
	}{
		{"quantityOnHand", &ia.QuantityOnHand},
		{"quantityOnOrder", &ia.QuantityOnOrder},
		{"quantityCommitted", &ia.QuantityCommitted},
		{"quantityBackOrdered", &ia.QuantityBackOrdered},
		{"quantityAvailable", &ia.QuantityAvailable},
	} {
		if *q.dst, err = quantityOf(el, q.name); err != nil {
			return ItemAvailability{}, err
		}
	}
	return ia, nil
}

// quantityOf reads an optional decimal field. Absent means zero; present
// but unparseable is a server bug worth surfacing.
func quantityOf(el *etree.Element, name string) (decimal.Decimal, error) {
	s := childText(el, name)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("netsuite: parse %s %q: %w", name, s, err)
	}
	return d, nil
}

func childText(el *etree.Element, name string) string {
	child := el.SelectElement(name)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

// GetServerTime returns the endpoint's current time.
func (c *Client) GetServerTime(ctx context.Context) (time.Time, error) {
	body := c.Messages().Element("getServerTime")

	resp, err := c.Call(ctx, "getServerTime", body)
	if err != nil {
		return time.Time{}, err
	}

	result, err := Extract(resp, "body.getServerTimeResult")
	if err != nil {
		return time.Time{}, err
	}
	if err := checkStatus(result); err != nil {
		return time.Time{}, err
	}

	s := childText(result, "serverTime")
	if s == "" {
		return time.Time{}, errors.New("netsuite: server time response carries no serverTime")
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("netsuite: parse serverTime %q: %w", s, err)
	}
	return t, nil
}

// ClockSkew estimates how far the local clock is ahead of (positive) or
// behind (negative) the endpoint. Passport signatures expire when the
// timestamp drifts more than a few minutes, so a large skew here usually
// explains otherwise mysterious InvalidSignature faults.
//
// The estimate charges half the round trip to each direction.
func (c *Client) ClockSkew(ctx context.Context) (time.Duration, error) {
	before := c.clock.Now()
	server, err := c.GetServerTime(ctx)
	if err != nil {
		return 0, err
	}
	after := c.clock.Now()

	local := before.Add(after.Sub(before) / 2)
	return local.Sub(server), nil
}

// DataCenterURLs are the account-specific domains NetSuite reports for
// one account. Requests perform measurably better against the
// account's own data center than against the generic endpoints.
type DataCenterURLs struct {
	RestDomain        string
	SystemDomain      string
	WebservicesDomain string
}

// GetDataCenterURLs resolves the data center domains for an account.
// An empty account falls back to the configured one.
func (c *Client) GetDataCenterURLs(ctx context.Context, account string) (*DataCenterURLs, error) {
	if account == "" {
		account = c.config.Account
	}
	if account == "" {
		return nil, errors.New("netsuite: no account to resolve data center urls for")
	}

	msgs := c.Messages()
	body := msgs.Element("getDataCenterUrls")
	body.AddChild(msgs.Text("account", account))

	resp, err := c.Call(ctx, "getDataCenterUrls", body)
	if err != nil {
		return nil, err
	}

	result, err := Extract(resp, "body.getDataCenterUrlsResult")
	if err != nil {
		return nil, err
	}
	if err := checkStatus(result); err != nil {
		return nil, err
	}

	urls := result.SelectElement("dataCenterUrls")
	if urls == nil {
		return nil, errors.New("netsuite: response carries no dataCenterUrls")
	}
	return &DataCenterURLs{
		RestDomain:        childText(urls, "restDomain"),
		SystemDomain:      childText(urls, "systemDomain"),
		WebservicesDomain: childText(urls, "webservicesDomain"),
	}, nil
}
