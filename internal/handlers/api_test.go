package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bmizerany/pat"
	"github.com/google/uuid"
	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fabhomes/internal/identity"
	"fabhomes/internal/models"
	"fabhomes/internal/repositories/memstore"
	"fabhomes/internal/services"
	"fabhomes/utils"
)

type testAPI struct {
	t      *testing.T
	store  *memstore.Store
	tokens *utils.Manager
	router http.Handler
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	store := memstore.New()
	tokens, err := utils.NewManager("test-signing-key")
	require.NoError(t, err)

	userService := &services.UserService{Users: store.Users()}
	h := Handlers{
		Properties: &PropertyHandler{Log: log, Service: &services.PropertyService{
			Properties: store.Properties(), Users: store.Users(), Agencies: store.Agencies(), Reviews: store.Reviews(),
		}},
		Inquiries: &InquiryHandler{Log: log, Service: &services.InquiryService{
			Inquiries: store.Inquiries(), Properties: store.Properties(), Users: store.Users(),
		}},
		Favorites: &FavoriteHandler{Log: log, Service: &services.FavoriteService{
			Favorites: store.Favorites(), Properties: store.Properties(),
		}},
		Agencies: &AgencyHandler{Log: log, Service: &services.AgencyService{
			Agencies: store.Agencies(), Listings: store.Properties(), Users: store.Users(),
		}},
		Analytics: &AnalyticsHandler{Log: log, Service: &services.AnalyticsService{Store: store.Analytics(), Log: log}},
		Reviews: &ReviewHandler{Log: log, Service: &services.ReviewService{
			Reviews: store.Reviews(), Users: store.Users(), Agencies: store.Agencies(), Properties: store.Properties(),
		}},
		Transactions: &TransactionHandler{Log: log, Service: &services.TransactionService{
			Transactions: store.Transactions(), Properties: store.Properties(),
		}},
		Users: &UserHandler{Log: log, Service: userService},
	}
	auth := &Authenticator{
		Bridge: identity.NewBridge(identity.DevVerifier{Tokens: tokens}, log),
		Users:  userService,
		Log:    log,
	}

	chains := map[Access]alice.Chain{
		AccessPublic:         alice.New(),
		AccessCallerOptional: alice.New(auth.Authenticate),
		AccessCallerRequired: alice.New(auth.Authenticate, RequireCaller),
	}
	mux := pat.New()
	for _, op := range h.Operations() {
		mux.Add(op.Method, op.Pattern, chains[op.Access].ThenFunc(op.Handler))
	}
	return &testAPI{t: t, store: store, tokens: tokens, router: mux}
}

// token signs a credential for uid; the first request with it provisions
// the local user.
func (a *testAPI) token(uid, name string) string {
	a.t.Helper()
	tok, err := a.tokens.NewJWT(uid, uid+"@example.com", name, time.Hour)
	require.NoError(a.t, err)
	return tok
}

func (a *testAPI) userID(uid string) uuid.UUID {
	a.t.Helper()
	u, err := a.store.Users().GetByFirebaseUID(context.Background(), uid)
	require.NoError(a.t, err)
	return u.ID
}

func (a *testAPI) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func listingBody(edit func(map[string]any)) map[string]any {
	body := map[string]any{
		"title":         "Pool house",
		"description":   "Big yard",
		"property_type": "house",
		"listing_type":  "sale",
		"price":         520000,
		"location":      "4 Elm St",
		"city":          "Austin",
		"state":         "TX",
		"bedrooms":      4,
		"bathrooms":     2.5,
		"total_area":    2400,
	}
	if edit != nil {
		edit(body)
	}
	return body
}

func (a *testAPI) createListing(token string, edit func(map[string]any)) string {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/properties", token, listingBody(edit))
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[map[string]any](a.t, rec)["id"].(string)
}

func TestListingLifecycleScenario(t *testing.T) {
	api := newTestAPI(t)
	seller := api.token("uid-u1", "Sam Seller")
	buyer := api.token("uid-u2", "Bea Buyer")

	id := api.createListing(seller, nil)

	rec := api.do(http.MethodGet, "/properties/"+id, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decodeBody[map[string]any](t, rec)
	sellerObj := detail["seller"].(map[string]any)
	assert.Equal(t, "Sam", sellerObj["first_name"])
	assert.Equal(t, "Seller", sellerObj["last_name"])
	assert.Equal(t, "uid-u1@example.com", sellerObj["email"])
	assert.EqualValues(t, 0, detail["views_count"])
	assert.EqualValues(t, 0, detail["favorites_count"])

	for i := 1; i <= 2; i++ {
		rec = api.do(http.MethodPost, "/properties/"+id+"/increment_view", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.EqualValues(t, i, decodeBody[map[string]any](t, rec)["views_count"])
	}
	detail = decodeBody[map[string]any](t, api.do(http.MethodGet, "/properties/"+id, "", nil))
	assert.EqualValues(t, 2, detail["views_count"])

	rec = api.do(http.MethodPost, "/favorites/toggle", buyer, map[string]any{"property_id": id})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, true, decodeBody[map[string]any](t, rec)["is_favorite"])

	rec = api.do(http.MethodPost, "/favorites/toggle", buyer, map[string]any{"property_id": id})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody[map[string]any](t, rec)["is_favorite"])

	assert.Zero(t, api.store.FavoriteCount(api.userID("uid-u2"), uuid.MustParse(id)))
}

func TestGuestInquiryScenario(t *testing.T) {
	api := newTestAPI(t)
	id := api.createListing(api.token("uid-seller", "Sam Seller"), nil)

	body := map[string]any{"property": id, "name": "Guest", "email": "guest@example.com", "message": "Still available?"}
	rec := api.do(http.MethodPost, "/inquiries", "", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	inquiry := decodeBody[map[string]any](t, rec)
	assert.Nil(t, inquiry["user"])
	assert.Equal(t, "Guest", inquiry["name"])
	assert.Equal(t, "guest@example.com", inquiry["email"])
	assert.Equal(t, "new", inquiry["status"])

	// a rejected credential degrades to a guest submission
	req := httptest.NewRequest(http.MethodPost, "/inquiries", bytes.NewReader(mustJSON(t, body)))
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Nil(t, decodeBody[map[string]any](t, rec)["user"])
}

func TestInquiryVisibilityAndStatus(t *testing.T) {
	api := newTestAPI(t)
	seller := api.token("uid-seller", "Sam Seller")
	buyer := api.token("uid-buyer", "Bea Buyer")
	stranger := api.token("uid-stranger", "Stan Stranger")
	id := api.createListing(seller, nil)

	rec := api.do(http.MethodPost, "/inquiries", buyer, map[string]any{
		"property": id, "name": "Bea", "email": "bea@example.com", "message": "Viewing?", "inquiry_type": "viewing_request",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	inquiryID := decodeBody[map[string]any](t, rec)["id"].(string)

	anon := decodeBody[models.Page[map[string]any]](t, api.do(http.MethodGet, "/inquiries", "", nil))
	assert.Zero(t, anon.Count)
	assert.Empty(t, anon.Results)

	for _, tok := range []string{seller, buyer} {
		page := decodeBody[models.Page[map[string]any]](t, api.do(http.MethodGet, "/inquiries", tok, nil))
		assert.Equal(t, 1, page.Count)
	}
	assert.Zero(t, decodeBody[models.Page[map[string]any]](t, api.do(http.MethodGet, "/inquiries", stranger, nil)).Count)

	path := "/inquiries/" + inquiryID + "/update_status"
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPatch, path, seller, map[string]any{"status": "archived"}).Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodPatch, path, stranger, map[string]any{"status": "contacted"}).Code)

	rec = api.do(http.MethodPatch, path, seller, map[string]any{"status": "contacted"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "contacted", decodeBody[map[string]any](t, rec)["status"])
}

func TestCreatePropertyValidation(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/properties", "", listingBody(nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(http.MethodPost, "/properties", api.token("uid-1", "Sam Seller"), listingBody(func(b map[string]any) {
		b["property_type"] = "castle"
		delete(b, "city")
	}))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errBody := decodeBody[struct {
		Code    string              `json:"code"`
		Details []models.FieldError `json:"details"`
	}](t, rec)
	assert.Equal(t, ErrCodeValidation, errBody.Code)
	fields := []string{}
	for _, d := range errBody.Details {
		fields = append(fields, d.Field)
	}
	assert.ElementsMatch(t, []string{"property_type", "city"}, fields)
}

func TestCreatePropertyRequiresCoreFields(t *testing.T) {
	api := newTestAPI(t)
	seller := api.token("uid-1", "Sam Seller")

	detailFields := func(rec *httptest.ResponseRecorder) []string {
		t.Helper()
		require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		body := decodeBody[struct {
			Details []models.FieldError `json:"details"`
		}](t, rec)
		fields := []string{}
		for _, d := range body.Details {
			fields = append(fields, d.Field)
		}
		return fields
	}

	rec := api.do(http.MethodPost, "/properties", seller, listingBody(func(b map[string]any) {
		delete(b, "price")
		delete(b, "bedrooms")
		delete(b, "bathrooms")
	}))
	assert.ElementsMatch(t, []string{"price", "bedrooms", "bathrooms"}, detailFields(rec))

	rec = api.do(http.MethodPost, "/properties", seller, listingBody(func(b map[string]any) {
		b["title"] = "   "
		b["city"] = "\t"
	}))
	assert.ElementsMatch(t, []string{"title", "city"}, detailFields(rec))

	rec = api.do(http.MethodPost, "/properties", seller, listingBody(func(b map[string]any) {
		b["listing_type"] = "rent"
		b["monthly_rent"] = 900
		b["price"] = 0
		b["bedrooms"] = 0
		b["bathrooms"] = 1
	}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody[map[string]any](t, rec)
	assert.Equal(t, 0.0, created["price"])
	assert.Equal(t, 0.0, created["bedrooms"])

	rec = api.do(http.MethodPatch, "/properties/"+created["id"].(string), seller, map[string]any{"price": nil})
	assert.Equal(t, []string{"price"}, detailFields(rec))
}

func TestUpdatePermissions(t *testing.T) {
	api := newTestAPI(t)
	seller := api.token("uid-seller", "Sam Seller")
	other := api.token("uid-other", "Olga Other")
	id := api.createListing(seller, nil)

	rec := api.do(http.MethodPatch, "/properties/"+id, other, map[string]any{"title": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodDelete, "/properties/"+id, other, nil).Code)

	detail := decodeBody[map[string]any](t, api.do(http.MethodGet, "/properties/"+id, "", nil))
	assert.Equal(t, "Pool house", detail["title"])

	rec = api.do(http.MethodPatch, "/properties/"+id, seller, map[string]any{"title": "Pool house, reduced", "price": 499000})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	detail = decodeBody[map[string]any](t, rec)
	assert.Equal(t, "Pool house, reduced", detail["title"])
	assert.Equal(t, "Austin", detail["city"], "patch keeps omitted fields")

	rec = api.do(http.MethodPut, "/properties/"+id, seller, map[string]any{"title": "Only a title"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "put replaces the whole listing")

	assert.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, "/properties/"+id, seller, nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/properties/"+id, "", nil).Code)
}

func TestListFiltersAndPagination(t *testing.T) {
	api := newTestAPI(t)
	seller := api.token("uid-seller", "Sam Seller")
	api.createListing(seller, func(b map[string]any) { b["city"] = "austin" })
	api.createListing(seller, func(b map[string]any) { b["city"] = "AUSTIN"; b["title"] = "Ranch" })
	api.createListing(seller, func(b map[string]any) {
		b["city"] = "Dallas"
		b["title"] = "Condo"
		b["description"] = "Rooftop pool access"
		b["property_type"] = "condo"
	})

	page := decodeBody[models.Page[map[string]any]](t, api.do(http.MethodGet, "/properties?city=Austin", "", nil))
	assert.Equal(t, 2, page.Count)
	for _, item := range page.Results {
		assert.Equal(t, "austin", lower(item["city"].(string)))
	}

	page = decodeBody[models.Page[map[string]any]](t, api.do(http.MethodGet, "/properties?page_size=2", "", nil))
	assert.Equal(t, 3, page.Count)
	assert.Len(t, page.Results, 2)
	require.NotNil(t, page.Next)
	assert.Contains(t, *page.Next, "page=2")
	assert.Nil(t, page.Previous)

	page = decodeBody[models.Page[map[string]any]](t, api.do(http.MethodGet, "/properties?page_size=2&page=2", "", nil))
	assert.Len(t, page.Results, 1)
	assert.Nil(t, page.Next)
	require.NotNil(t, page.Previous)

	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/properties?page=9", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/properties?min_bedrooms=many", "", nil).Code)

	page = decodeBody[models.Page[map[string]any]](t, api.do(http.MethodGet, "/properties/search?q=POOL", "", nil))
	require.Equal(t, 2, page.Count, "title or description mentions pool")

	page = decodeBody[models.Page[map[string]any]](t, api.do(http.MethodGet, "/properties/search?q=pool&type=condo&city=dallas", "", nil))
	require.Equal(t, 1, page.Count)
	assert.Equal(t, "Condo", page.Results[0]["title"])
}

func TestFavoriteErrors(t *testing.T) {
	api := newTestAPI(t)
	buyer := api.token("uid-buyer", "Bea Buyer")

	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodPost, "/favorites/toggle", "", map[string]any{}).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodPost, "/favorites/toggle", buyer, map[string]any{}).Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodPost, "/favorites/toggle", buyer,
		map[string]any{"property_id": uuid.NewString()}).Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodPost, "/favorites/toggle", buyer,
		map[string]any{"property_id": "42"}).Code)

	page := decodeBody[models.Page[map[string]any]](t, api.do(http.MethodGet, "/favorites", buyer, nil))
	assert.Zero(t, page.Count)
	assert.NotNil(t, page.Results)
}

func TestPublicReadsAndMalformedIDs(t *testing.T) {
	api := newTestAPI(t)

	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/properties/not-a-uuid", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodPost, "/properties/"+uuid.NewString()+"/increment_view", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/agencies/"+uuid.NewString(), "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/reviews", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/users/me", "", nil).Code)

	rec := api.do(http.MethodGet, "/analytics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	counts := decodeBody[models.Analytics](t, rec)
	assert.Zero(t, counts.TotalProperties)

	rec = api.do(http.MethodGet, "/users/me", api.token("uid-new", "Nia New"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decodeBody[models.User](t, rec)
	assert.Equal(t, "Nia", me.FirstName)
	require.NotNil(t, me.Profile)
	assert.Equal(t, models.RoleBuyer, me.Profile.Role)
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func lower(s string) string { return string(bytes.ToLower([]byte(s))) }
