package dto

// UserCreateRequest payload for admin-created accounts.
type UserCreateRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RealName   string `json:"real_name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	UserType   string `json:"user_type"`
	MerchantID *int64 `json:"merchant_id"`
}

// UserUpdateRequest payload for profile patches. Nil fields are untouched.
type UserUpdateRequest struct {
	RealName *string `json:"real_name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
}

// UserStatusRequest payload for status changes.
type UserStatusRequest struct {
	Status string `json:"status"`
}

// AssignRolesRequest payload replacing a user's role set.
type AssignRolesRequest struct {
	RoleIDs []int64 `json:"role_ids"`
}

// RoleCreateRequest payload for new roles.
type RoleCreateRequest struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Descr      string `json:"descr"`
	RoleType   string `json:"role_type"`
	MerchantID *int64 `json:"merchant_id"`
}
