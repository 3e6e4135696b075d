// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeyInternalError = "internal_error"
	KeyRateLimited   = "rate_limited"

	// Authentication
	KeyAuthRequired            = "auth.required"
	KeyAuthInvalidToken        = "auth.invalid_token"
	KeyAuthTokenExpired        = "auth.token_expired"
	KeyAuthInvalidCredentials  = "auth.invalid_credentials"
	KeyAuthUserExists          = "auth.user_exists"
	KeyAuthLoginSuccess        = "auth.login_success"
	KeyAuthRegisterSuccess     = "auth.register_success"
	KeyAuthInvalidRegistration = "auth.invalid_registration"
	KeyAuthInvalidLogin        = "auth.invalid_login"

	// User Management
	KeyUserNotFound       = "user.not_found"
	KeyUserMobileUpdated  = "user.mobile_updated"
	KeyUserEmailUpdated   = "user.email_updated"
	KeyUserAddressUpdated = "user.address_updated"
	KeyUserMobileRequired = "user.mobile_required"
	KeyUserInvalidMobile  = "user.invalid_mobile"
	KeyUserEmailRequired  = "user.email_required"
	KeyUserInvalidEmail   = "user.invalid_email"
	KeyUserEmailTaken     = "user.email_taken"
	KeyUserMissingField   = "user.missing_field"
	KeyUserInvalidAddress = "user.invalid_address"

	// Products
	KeyProductCreated           = "product.created"
	KeyProductUpdated           = "product.updated"
	KeyProductDeleted           = "product.deleted"
	KeyProductNotFound          = "product.not_found"
	KeyProductNotFoundByID      = "product.not_found_id"
	KeyProductInsufficientStock = "product.insufficient_stock"
	KeyProductRequiredFields    = "product.required_fields"
	KeyProductInvalid           = "product.invalid"

	// Orders
	KeyOrderCreated                = "order.created"
	KeyOrderNotFound               = "order.not_found"
	KeyOrderStatusUpdated          = "order.status_updated"
	KeyOrderCancelled              = "order.cancelled"
	KeyOrderAllDeleted             = "order.all_deleted"
	KeyOrderReviewAdded            = "order.review_added"
	KeyOrderComplaintFiled         = "order.complaint_filed"
	KeyOrderComplaintUpdated       = "order.complaint_updated"
	KeyOrderNoItems                = "order.no_items"
	KeyOrderMissingAddressField    = "order.missing_address_field"
	KeyOrderInvalid                = "order.invalid"
	KeyOrderMissingProduct         = "order.missing_product"
	KeyOrderInvalidStatus          = "order.invalid_status"
	KeyOrderStatusForbidden        = "order.status_forbidden"
	KeyOrderCancelForbidden        = "order.cancel_forbidden"
	KeyOrderNotCancellable         = "order.not_cancellable"
	KeyOrderViewForbidden          = "order.view_forbidden"
	KeyOrderListForbidden          = "order.list_forbidden"
	KeyOrderDeleteForbidden        = "order.delete_forbidden"
	KeyOrderInvalidRating          = "order.invalid_rating"
	KeyOrderReviewForbidden        = "order.review_forbidden"
	KeyOrderNotDelivered           = "order.not_delivered"
	KeyOrderAlreadyReviewed        = "order.already_reviewed"
	KeyOrderInvalidComplaint       = "order.invalid_complaint"
	KeyOrderComplaintForbidden     = "order.complaint_forbidden"
	KeyOrderComplaintAdminOnly     = "order.complaint_admin_only"
	KeyOrderInvalidComplaintStatus = "order.invalid_complaint_status"
	KeyOrderNoComplaint            = "order.no_complaint"
	KeyOrderComplaintTransition    = "order.complaint_transition"
	KeyOrderInvoiceForbidden       = "order.invoice_forbidden"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"

	// Validation
	KeyValidationInvalid = "validation.invalid"
)
