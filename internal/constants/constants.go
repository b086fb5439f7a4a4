package constants

// User roles.
const (
	UserRoleAdmin = "admin"
	UserRoleUser  = "user"
)

// Deal status values.
const (
	DealStatusOpen       = "open"
	DealStatusInProgress = "in_progress"
	DealStatusClosed     = "closed"
)

// Party type classifiers for payment splits.
const (
	PartyTypeOwner    = "owner"
	PartyTypeBuyer    = "buyer"
	PartyTypeInvestor = "investor"
	PartyTypeOther    = "other"
)

// Directional roles within a split.
const (
	PartyRolePayer = "payer"
	PartyRolePayee = "payee"
)

// Payment status values.
const (
	PaymentStatusPaid    = "paid"
	PaymentStatusPending = "pending"
	PaymentStatusOverdue = "overdue"
)

// Payment type tags.
const (
	PaymentTypeLandPurchase   = "land_purchase"
	PaymentTypeInvestmentSale = "investment_sale"
	PaymentTypeDocumentation  = "documentation_legal"
	PaymentTypeOther          = "other"
)

// Payment category tags.
const (
	PaymentCategoryBuy   = "buy"
	PaymentCategorySell  = "sell"
	PaymentCategoryDocs  = "docs"
	PaymentCategoryOther = "other"
)

// Queue names.
const (
	QueueDefault = "default"
)

// Async task type names.
const (
	TaskProofFileCleanup = "proof:file_cleanup"
	TaskDealFilesCleanup = "deal:files_cleanup"
)

// Date layout accepted for payment and expense dates.
const (
	DateLayout = "2006-01-02"
)
