package accounting

// Well-known account codes referenced by the posting engine and reports.
// They exist for every tenant after bootstrap and are system-flagged.
const (
	CodeCash               = "1000"
	CodeAccountsReceivable = "1100"
	CodeInventory          = "1200"
	CodeAccountsPayable    = "2000"
	CodeSalesTaxPayable    = "2100"
	CodeOwnersEquity       = "3000"
	CodeRetainedEarnings   = "3100"
	CodeSalesRevenue       = "4000"
	CodeOtherIncome        = "4100"
	CodeCOGS               = "5000"
	CodeOperatingExpense   = "6000"
	CodeVehicleExpense     = "6100"
	CodeSalariesExpense    = "6200"
)

// DefaultAccountSpec describes one account in the default chart
type DefaultAccountSpec struct {
	Code     string
	Name     string
	Type     AccountType
	Category string
}

// DefaultChart returns the starter chart of accounts created for every
// tenant. Bootstrap matches by code and never duplicates.
func DefaultChart() []DefaultAccountSpec {
	return []DefaultAccountSpec{
		{Code: CodeCash, Name: "Cash", Type: AccountTypeAsset},
		{Code: CodeAccountsReceivable, Name: "Accounts Receivable", Type: AccountTypeAsset},
		{Code: CodeInventory, Name: "Inventory", Type: AccountTypeAsset},
		{Code: CodeAccountsPayable, Name: "Accounts Payable", Type: AccountTypeLiability},
		{Code: CodeSalesTaxPayable, Name: "Sales Tax Payable", Type: AccountTypeLiability},
		{Code: CodeOwnersEquity, Name: "Owner's Equity", Type: AccountTypeEquity},
		{Code: CodeRetainedEarnings, Name: "Retained Earnings", Type: AccountTypeEquity},
		{Code: CodeSalesRevenue, Name: "Sales Revenue", Type: AccountTypeRevenue},
		{Code: CodeOtherIncome, Name: "Other Income", Type: AccountTypeRevenue},
		{Code: CodeCOGS, Name: "Cost of Goods Sold", Type: AccountTypeExpense, Category: CategoryCOGS},
		{Code: CodeOperatingExpense, Name: "Operating Expenses", Type: AccountTypeExpense},
		{Code: CodeVehicleExpense, Name: "Vehicle Expenses", Type: AccountTypeExpense},
		{Code: CodeSalariesExpense, Name: "Salaries Expense", Type: AccountTypeExpense},
	}
}
