package netsuite

import (
	"github.com/suitegate/go-suitetalk/soap"
)

// factory returns the memoized element factory for a schema binding.
func (c *Client) factory(module, subNamespace string) *soap.Factory {
	key := module + "/" + subNamespace
	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.factories[key]; ok {
		return f
	}
	f := soap.NewFactory(module, subNamespace, c.urnVersion)
	c.factories[key] = f
	return f
}

// Namespace factories, one per SuiteTalk schema at the client's endpoint
// version. The plain accessors cover record and message schemas; the
// *Types accessors cover the matching enumeration schemas.

// Core returns the platform core factory (RecordRef, status, search
// paging types).
func (c *Client) Core() *soap.Factory {
	return c.factory("core", soap.SubNamespacePlatform)
}

// CoreTypes returns the platform core enumerations factory.
func (c *Client) CoreTypes() *soap.Factory {
	return c.factory("types.core", soap.SubNamespacePlatform)
}

// FaultsTypes returns the platform fault enumerations factory.
func (c *Client) FaultsTypes() *soap.Factory {
	return c.factory("types.faults", soap.SubNamespacePlatform)
}

// Faults returns the platform faults factory.
func (c *Client) Faults() *soap.Factory {
	return c.factory("faults", soap.SubNamespacePlatform)
}

// Messages returns the platform messages factory. Operation request
// elements and the passport/preference headers live here.
func (c *Client) Messages() *soap.Factory {
	return c.factory("messages", soap.SubNamespacePlatform)
}

// Common returns the platform common factory (shared search and filter
// types).
func (c *Client) Common() *soap.Factory {
	return c.factory("common", soap.SubNamespacePlatform)
}

// CommonTypes returns the platform common enumerations factory.
func (c *Client) CommonTypes() *soap.Factory {
	return c.factory("types.common", soap.SubNamespacePlatform)
}

// Activities schemas.

func (c *Client) Scheduling() *soap.Factory {
	return c.factory("scheduling", soap.SubNamespaceActivities)
}

func (c *Client) SchedulingTypes() *soap.Factory {
	return c.factory("types.scheduling", soap.SubNamespaceActivities)
}

// General schemas.

func (c *Client) Communication() *soap.Factory {
	return c.factory("communication", soap.SubNamespaceGeneral)
}

func (c *Client) CommunicationTypes() *soap.Factory {
	return c.factory("types.communication", soap.SubNamespaceGeneral)
}

// Documents schemas.

// Filecabinet returns the file cabinet factory (File and Folder records).
func (c *Client) Filecabinet() *soap.Factory {
	return c.factory("filecabinet", soap.SubNamespaceDocuments)
}

func (c *Client) FilecabinetTypes() *soap.Factory {
	return c.factory("types.filecabinet", soap.SubNamespaceDocuments)
}

// Lists schemas.

// Relationships returns the relationships factory (Customer, Vendor,
// Partner, Contact records).
func (c *Client) Relationships() *soap.Factory {
	return c.factory("relationships", soap.SubNamespaceLists)
}

func (c *Client) RelationshipsTypes() *soap.Factory {
	return c.factory("types.relationships", soap.SubNamespaceLists)
}

func (c *Client) Support() *soap.Factory {
	return c.factory("support", soap.SubNamespaceLists)
}

func (c *Client) SupportTypes() *soap.Factory {
	return c.factory("types.support", soap.SubNamespaceLists)
}

// Accounting returns the accounting lists factory (Account, Item,
// Subsidiary records).
func (c *Client) Accounting() *soap.Factory {
	return c.factory("accounting", soap.SubNamespaceLists)
}

func (c *Client) AccountingTypes() *soap.Factory {
	return c.factory("types.accounting", soap.SubNamespaceLists)
}

func (c *Client) Employees() *soap.Factory {
	return c.factory("employees", soap.SubNamespaceLists)
}

func (c *Client) EmployeesTypes() *soap.Factory {
	return c.factory("types.employees", soap.SubNamespaceLists)
}

func (c *Client) Website() *soap.Factory {
	return c.factory("website", soap.SubNamespaceLists)
}

func (c *Client) WebsiteTypes() *soap.Factory {
	return c.factory("types.website", soap.SubNamespaceLists)
}

func (c *Client) Marketing() *soap.Factory {
	return c.factory("marketing", soap.SubNamespaceLists)
}

func (c *Client) MarketingTypes() *soap.Factory {
	return c.factory("types.marketing", soap.SubNamespaceLists)
}

func (c *Client) SupplyChain() *soap.Factory {
	return c.factory("supplychain", soap.SubNamespaceLists)
}

func (c *Client) SupplyChainTypes() *soap.Factory {
	return c.factory("types.supplychain", soap.SubNamespaceLists)
}

// Transactions schemas.

// Sales returns the sales transactions factory (SalesOrder, Invoice,
// CashSale records).
func (c *Client) Sales() *soap.Factory {
	return c.factory("sales", soap.SubNamespaceTransactions)
}

func (c *Client) SalesTypes() *soap.Factory {
	return c.factory("types.sales", soap.SubNamespaceTransactions)
}

func (c *Client) Purchases() *soap.Factory {
	return c.factory("purchases", soap.SubNamespaceTransactions)
}

func (c *Client) PurchasesTypes() *soap.Factory {
	return c.factory("types.purchases", soap.SubNamespaceTransactions)
}

func (c *Client) Customers() *soap.Factory {
	return c.factory("customers", soap.SubNamespaceTransactions)
}

func (c *Client) CustomersTypes() *soap.Factory {
	return c.factory("types.customers", soap.SubNamespaceTransactions)
}

func (c *Client) Financial() *soap.Factory {
	return c.factory("financial", soap.SubNamespaceTransactions)
}

func (c *Client) FinancialTypes() *soap.Factory {
	return c.factory("types.financial", soap.SubNamespaceTransactions)
}

func (c *Client) Bank() *soap.Factory {
	return c.factory("bank", soap.SubNamespaceTransactions)
}

func (c *Client) BankTypes() *soap.Factory {
	return c.factory("types.bank", soap.SubNamespaceTransactions)
}

// Inventory returns the inventory transactions factory (ItemFulfillment,
// InventoryAdjustment records).
func (c *Client) Inventory() *soap.Factory {
	return c.factory("inventory", soap.SubNamespaceTransactions)
}

func (c *Client) InventoryTypes() *soap.Factory {
	return c.factory("types.inventory", soap.SubNamespaceTransactions)
}

// General returns the general transactions factory (journal entries).
func (c *Client) General() *soap.Factory {
	return c.factory("general", soap.SubNamespaceTransactions)
}

// EmployeesTransactions returns the employee transactions factory
// (TimeBill, ExpenseReport records), distinct from the Employees list
// schema.
func (c *Client) EmployeesTransactions() *soap.Factory {
	return c.factory("employees", soap.SubNamespaceTransactions)
}

func (c *Client) EmployeesTransactionsTypes() *soap.Factory {
	return c.factory("types.employees", soap.SubNamespaceTransactions)
}

func (c *Client) DemandPlanning() *soap.Factory {
	return c.factory("demandplanning", soap.SubNamespaceTransactions)
}

func (c *Client) DemandPlanningTypes() *soap.Factory {
	return c.factory("types.demandplanning", soap.SubNamespaceTransactions)
}

// Setup schemas.

// Customization returns the customization factory (custom fields, custom
// records, custom lists).
func (c *Client) Customization() *soap.Factory {
	return c.factory("customization", soap.SubNamespaceSetup)
}

func (c *Client) CustomizationTypes() *soap.Factory {
	return c.factory("types.customization", soap.SubNamespaceSetup)
}
