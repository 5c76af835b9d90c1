package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthUnauthorized       ErrorCode = "AUTH_001"
	AuthInvalidCredentials ErrorCode = "AUTH_002"
	AuthEmailTaken         ErrorCode = "AUTH_003"
	AuthTokenRevoked       ErrorCode = "AUTH_004"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral          ErrorCode = "VALIDATION_001"
	ValidationAccountFields    ErrorCode = "VALIDATION_002"
	ValidationAccountType      ErrorCode = "VALIDATION_003"
	ValidationCategoryName     ErrorCode = "VALIDATION_004"
	ValidationInvalidAmount    ErrorCode = "VALIDATION_005"
	ValidationTransactionType  ErrorCode = "VALIDATION_006"
	ValidationPaymentMethod    ErrorCode = "VALIDATION_007"
	ValidationInitialAmount    ErrorCode = "VALIDATION_008"
	ValidationInvalidEmail     ErrorCode = "VALIDATION_009"
	ValidationPasswordTooShort ErrorCode = "VALIDATION_010"
)

// Account error codes (ACCOUNT_*)
const (
	AccountNotFound        ErrorCode = "ACCOUNT_001"
	AccountHasTransactions ErrorCode = "ACCOUNT_002"
)

// Category error codes (CATEGORY_*)
const (
	CategoryNotFound        ErrorCode = "CATEGORY_001"
	CategoryAlreadyExists   ErrorCode = "CATEGORY_002"
	CategoryHasTransactions ErrorCode = "CATEGORY_003"
)

// Transaction error codes (TRANSACTION_*)
const (
	TransactionNotFound          ErrorCode = "TRANSACTION_001"
	TransactionReferenceNotFound ErrorCode = "TRANSACTION_002"
)

// User error codes (USER_*)
const (
	UserNotFound ErrorCode = "USER_001"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_004"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Authentication errors
	AuthUnauthorized:       "Unauthorized",
	AuthInvalidCredentials: "Invalid email or password",
	AuthEmailTaken:         "User with this email already exists",
	AuthTokenRevoked:       "Unauthorized",

	// Validation errors
	ValidationGeneral:          "Validation failed",
	ValidationAccountFields:    "Name and type are required",
	ValidationAccountType:      "Invalid account type",
	ValidationCategoryName:     "Category name is required",
	ValidationInvalidAmount:    "Invalid amount",
	ValidationTransactionType:  "Invalid transaction type",
	ValidationPaymentMethod:    "Invalid payment method",
	ValidationInitialAmount:    "Invalid initial amount",
	ValidationInvalidEmail:     "Invalid email address format",
	ValidationPasswordTooShort: "Password is too short",

	// Account errors
	AccountNotFound:        "Account not found",
	AccountHasTransactions: "Cannot delete account with transactions",

	// Category errors
	CategoryNotFound:        "Category not found",
	CategoryAlreadyExists:   "Category already exists",
	CategoryHasTransactions: "Cannot delete category with transactions",

	// Transaction errors
	TransactionNotFound:          "Transaction not found",
	TransactionReferenceNotFound: "Account or category not found",

	// User errors
	UserNotFound: "User not found. Please complete registration.",

	// System errors
	SystemInternalError:      "Something went wrong!",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// KindForCode returns the failure kind a code belongs to
func KindForCode(code ErrorCode) Kind {
	switch code {
	case AuthUnauthorized, AuthInvalidCredentials, AuthTokenRevoked:
		return KindUnauthorized

	case ValidationGeneral, ValidationAccountFields, ValidationAccountType,
		ValidationCategoryName, ValidationInvalidAmount, ValidationTransactionType,
		ValidationPaymentMethod, ValidationInitialAmount, ValidationInvalidEmail,
		ValidationPasswordTooShort:
		return KindValidation

	case AccountNotFound, CategoryNotFound, TransactionNotFound,
		TransactionReferenceNotFound, UserNotFound:
		return KindNotFound

	case AuthEmailTaken, AccountHasTransactions, CategoryAlreadyExists,
		CategoryHasTransactions:
		return KindBusinessRule

	default:
		return KindUnexpected
	}
}
