package models

type Analytics struct {
	TotalProperties       int `json:"total_properties"`
	TotalInquiries        int `json:"total_inquiries"`
	AvailableProperties   int `json:"available_properties"`
	ForSale               int `json:"for_sale"`
	ForRent               int `json:"for_rent"`
	TotalUsers            int `json:"total_users"`
	VerifiedAgencies      int `json:"verified_agencies"`
	TotalReviews          int `json:"total_reviews"`
	CompletedTransactions int `json:"completed_transactions"`
}
