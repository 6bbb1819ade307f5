package model

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "Asset"
	AccountTypeLiability AccountType = "Liability"
	AccountTypeEquity    AccountType = "Equity"
	AccountTypeRevenue   AccountType = "Revenue"
	AccountTypeExpense   AccountType = "Expense"
)

// AccountTypes lists all types in report order.
var AccountTypes = []AccountType{
	AccountTypeAsset,
	AccountTypeLiability,
	AccountTypeEquity,
	AccountTypeRevenue,
	AccountTypeExpense,
}

// NormalSide is the side on which an account's balance is conventionally positive.
type NormalSide string

const (
	NormalDebit  NormalSide = "Debit"
	NormalCredit NormalSide = "Credit"
)

// Account represents a row in chart-of-accounts.csv.
type Account struct {
	ID        string // opaque, assigned at creation, immutable
	Code      string // short human-facing identifier, e.g. "1001"
	Name      string
	Type      AccountType
	Normal    NormalSide
	IsDeleted bool
}

// DisplayName returns the "code - name" form used by pickers and
// denormalized onto posted lines.
func (a Account) DisplayName() string {
	return a.Code + " - " + a.Name
}
