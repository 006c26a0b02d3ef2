package handlers

import "net/http"

// Access is what an operation needs to know about the caller.
type Access int

const (
	// AccessPublic never resolves the caller.
	AccessPublic Access = iota
	// AccessCallerOptional resolves the caller when a credential is sent.
	AccessCallerOptional
	// AccessCallerRequired answers 401 without a resolved caller.
	AccessCallerRequired
)

func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessCallerOptional:
		return "caller-optional"
	case AccessCallerRequired:
		return "caller-required"
	}
	return "unknown"
}

// Projection names the response shape an operation renders.
type Projection string

const (
	ProjectionPropertySummary Projection = "property_summary"
	ProjectionPropertyDetail  Projection = "property_detail"
	ProjectionViewCount       Projection = "views_count"
	ProjectionInquiryList     Projection = "inquiry_list"
	ProjectionInquiryDetail   Projection = "inquiry_detail"
	ProjectionFavorite        Projection = "favorite"
	ProjectionFavoriteToggle  Projection = "favorite_toggle"
	ProjectionAgency          Projection = "agency"
	ProjectionAgentProfile    Projection = "agent_profile"
	ProjectionAnalytics       Projection = "analytics"
	ProjectionReview          Projection = "review"
	ProjectionTransaction     Projection = "transaction"
	ProjectionUser            Projection = "user"
	ProjectionEmpty           Projection = "empty"
)

// Operation binds a route to its handler, access level and projection.
type Operation struct {
	Name       string
	Method     string
	Pattern    string
	Access     Access
	Projection Projection
	Handler    http.HandlerFunc
}

// Handlers groups every resource handler.
type Handlers struct {
	Properties   *PropertyHandler
	Inquiries    *InquiryHandler
	Favorites    *FavoriteHandler
	Agencies     *AgencyHandler
	Analytics    *AnalyticsHandler
	Reviews      *ReviewHandler
	Transactions *TransactionHandler
	Users        *UserHandler
}

// Operations returns the route table in registration order. Fixed segments
// such as /properties/search come before the /properties/:id patterns that
// would otherwise capture them.
func (h Handlers) Operations() []Operation {
	return []Operation{
		{"property.list", http.MethodGet, "/properties", AccessPublic, ProjectionPropertySummary, h.Properties.List},
		{"property.create", http.MethodPost, "/properties", AccessCallerRequired, ProjectionPropertyDetail, h.Properties.Create},
		{"property.search", http.MethodGet, "/properties/search", AccessPublic, ProjectionPropertySummary, h.Properties.Search},
		{"property.retrieve", http.MethodGet, "/properties/:id", AccessPublic, ProjectionPropertyDetail, h.Properties.Retrieve},
		{"property.update", http.MethodPut, "/properties/:id", AccessCallerRequired, ProjectionPropertyDetail, h.Properties.Update},
		{"property.partial_update", http.MethodPatch, "/properties/:id", AccessCallerRequired, ProjectionPropertyDetail, h.Properties.Update},
		{"property.delete", http.MethodDelete, "/properties/:id", AccessCallerRequired, ProjectionEmpty, h.Properties.Delete},
		{"property.increment_view", http.MethodPost, "/properties/:id/increment_view", AccessPublic, ProjectionViewCount, h.Properties.IncrementView},
		{"property.similar", http.MethodGet, "/properties/:id/similar", AccessPublic, ProjectionPropertySummary, h.Properties.Similar},
		{"property.upload_image", http.MethodPost, "/properties/:id/upload_image", AccessCallerRequired, ProjectionPropertyDetail, h.Properties.UploadImage},

		{"inquiry.list", http.MethodGet, "/inquiries", AccessCallerOptional, ProjectionInquiryList, h.Inquiries.List},
		{"inquiry.create", http.MethodPost, "/inquiries", AccessCallerOptional, ProjectionInquiryList, h.Inquiries.Create},
		{"inquiry.retrieve", http.MethodGet, "/inquiries/:id", AccessCallerOptional, ProjectionInquiryDetail, h.Inquiries.Retrieve},
		{"inquiry.update_status", http.MethodPatch, "/inquiries/:id/update_status", AccessCallerOptional, ProjectionInquiryList, h.Inquiries.UpdateStatus},

		{"favorite.list", http.MethodGet, "/favorites", AccessCallerRequired, ProjectionFavorite, h.Favorites.List},
		{"favorite.create", http.MethodPost, "/favorites", AccessCallerRequired, ProjectionFavorite, h.Favorites.Create},
		{"favorite.toggle", http.MethodPost, "/favorites/toggle", AccessCallerRequired, ProjectionFavoriteToggle, h.Favorites.Toggle},
		{"favorite.delete", http.MethodDelete, "/favorites/:id", AccessCallerRequired, ProjectionEmpty, h.Favorites.Delete},

		{"agency.list", http.MethodGet, "/agencies", AccessPublic, ProjectionAgency, h.Agencies.List},
		{"agency.retrieve", http.MethodGet, "/agencies/:id", AccessPublic, ProjectionAgency, h.Agencies.Retrieve},
		{"agency.properties", http.MethodGet, "/agencies/:id/properties", AccessPublic, ProjectionPropertySummary, h.Agencies.Properties},
		{"agency.agents", http.MethodGet, "/agencies/:id/agents", AccessPublic, ProjectionAgentProfile, h.Agencies.Agents},

		{"analytics", http.MethodGet, "/analytics", AccessPublic, ProjectionAnalytics, h.Analytics.Get},

		{"review.list", http.MethodGet, "/reviews", AccessPublic, ProjectionReview, h.Reviews.List},
		{"review.create", http.MethodPost, "/reviews", AccessCallerRequired, ProjectionReview, h.Reviews.Create},

		{"transaction.list", http.MethodGet, "/transactions", AccessCallerRequired, ProjectionTransaction, h.Transactions.List},
		{"transaction.create", http.MethodPost, "/transactions", AccessCallerRequired, ProjectionTransaction, h.Transactions.Create},
		{"transaction.retrieve", http.MethodGet, "/transactions/:id", AccessCallerRequired, ProjectionTransaction, h.Transactions.Retrieve},

		{"user.me", http.MethodGet, "/users/me", AccessCallerRequired, ProjectionUser, h.Users.Me},
	}
}
