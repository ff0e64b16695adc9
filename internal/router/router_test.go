package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-adoption-api/internal/router"
)

func doReq(t *testing.T, baseURL, method, path, userID, roles string, body any) (int, []byte) {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if userID != "" {
		req.Header.Set("X-Debug-User-ID", userID)
	}
	if roles != "" {
		req.Header.Set("X-Debug-Roles", roles)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}

func field(t *testing.T, body []byte, key string) string {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		t.Fatalf("unmarshal %s: %v", string(body), err)
	}
	v, _ := m[key].(string)
	return v
}

func TestHTTP_EndToEnd_ApplicationToShelter(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	applicant := "applicant-1"
	admin := "admin-1"
	visitor := "visitor-1"

	// 1) Applicant submits a shelter application
	var requestID string
	{
		st, body := doReq(t, ts.URL, "POST", "/shelters/applications", applicant, "", map[string]any{
			"shelter_name": "Happy Paws",
			"remarks":      "ten years of rescue work",
			"address": map[string]any{
				"street":  "123 Bark St",
				"city":    "Lima",
				"country": "PE",
			},
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 submit, got %d body=%s", st, string(body))
		}
		requestID = field(t, body, "id")
		if requestID == "" {
			t.Fatalf("submit returned no id: %s", string(body))
		}
	}

	// 2) A non-admin cannot decide
	{
		st, _ := doReq(t, ts.URL, "PUT", "/shelters/applications/"+requestID+"/status", visitor, "", map[string]any{
			"approve": true,
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 decide by non-admin, got %d", st)
		}
	}

	// 3) Admin approves: shelter is created, applicant becomes manager
	var shelterID string
	{
		st, body := doReq(t, ts.URL, "PUT", "/shelters/applications/"+requestID+"/status", admin, "admin", map[string]any{
			"approve": true,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 approve, got %d body=%s", st, string(body))
		}
		shelterID = field(t, body, "shelter_id")
		if shelterID == "" {
			t.Fatalf("approval produced no shelter_id: %s", string(body))
		}
	}

	// 4) A second approval cannot create a second shelter
	{
		st, _ := doReq(t, ts.URL, "PUT", "/shelters/applications/"+requestID+"/status", admin, "admin", map[string]any{
			"approve": true,
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 double approve, got %d", st)
		}
	}

	// 5) The shelter is publicly readable and carries the proposed address
	{
		st, body := doReq(t, ts.URL, "GET", "/shelters/"+shelterID, "", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get shelter, got %d body=%s", st, string(body))
		}
		if got := field(t, body, "name"); got != "Happy Paws" {
			t.Fatalf("expected shelter name Happy Paws, got %q", got)
		}
	}

	// 6) The applicant can now manage the shelter: register pets
	var petID string
	{
		st, body := doReq(t, ts.URL, "POST", "/shelters/"+shelterID+"/pets", applicant, "", map[string]any{
			"name":    "Milo",
			"species": "dog",
			"breed":   "mixed",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 register pet by manager, got %d body=%s", st, string(body))
		}
		petID = field(t, body, "id")
	}

	// 7) An outsider cannot
	{
		st, _ := doReq(t, ts.URL, "POST", "/shelters/"+shelterID+"/pets", visitor, "", map[string]any{
			"name":    "Luna",
			"species": "cat",
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 register pet by outsider, got %d", st)
		}
	}

	// 8) Manager marks the pet adopted
	{
		st, body := doReq(t, ts.URL, "PATCH", "/pets/"+petID+"/status", applicant, "", map[string]any{
			"status": "adopted",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 set status, got %d body=%s", st, string(body))
		}
	}

	// 9) A visitor follows and reviews
	{
		st, _ := doReq(t, ts.URL, "PUT", "/shelters/"+shelterID+"/follow", visitor, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 follow, got %d", st)
		}
		st, body := doReq(t, ts.URL, "POST", "/shelters/"+shelterID+"/reviews", visitor, "", map[string]any{
			"rating":  4.5,
			"comment": "great people",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 review, got %d body=%s", st, string(body))
		}
	}

	// 10) Metrics aggregate pets, followers and reviews
	{
		st, body := doReq(t, ts.URL, "GET", "/shelters/metrics/"+shelterID, "", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 metrics, got %d body=%s", st, string(body))
		}
		var m struct {
			TotalPets     int     `json:"total_pets"`
			AdoptedPets   int     `json:"adopted_pets"`
			FollowerCount int     `json:"follower_count"`
			AverageRating float64 `json:"average_rating"`
			ReviewCount   int     `json:"review_count"`
		}
		if err := json.Unmarshal(body, &m); err != nil {
			t.Fatalf("unmarshal metrics: %v", err)
		}
		if m.TotalPets != 1 || m.AdoptedPets != 1 {
			t.Fatalf("expected 1 pet, 1 adopted, got %+v", m)
		}
		if m.FollowerCount != 1 || m.ReviewCount != 1 || m.AverageRating != 4.5 {
			t.Fatalf("unexpected community metrics: %+v", m)
		}
	}

	// 11) Admin soft-deletes; the shelter disappears from reads
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/shelters/"+shelterID, admin, "admin", nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/shelters/"+shelterID, "", "", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after soft delete, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/shelters/metrics/"+shelterID, "", "", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 metrics after soft delete, got %d", st)
		}
	}
}

func TestHTTP_Applications_WithdrawAndList(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	applicant := "applicant-2"
	admin := "admin-1"

	st, body := doReq(t, ts.URL, "POST", "/shelters/applications", applicant, "", map[string]any{
		"shelter_name": "Second Chance",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 submit, got %d body=%s", st, string(body))
	}
	requestID := field(t, body, "id")

	// Someone else cannot withdraw it
	{
		st, _ := doReq(t, ts.URL, "POST", "/shelters/applications/"+requestID+"/withdraw", "stranger-1", "", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 withdraw by stranger, got %d", st)
		}
	}

	// The applicant can, twice
	for i := 0; i < 2; i++ {
		st, body := doReq(t, ts.URL, "POST", "/shelters/applications/"+requestID+"/withdraw", applicant, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 withdraw (try %d), got %d body=%s", i+1, st, string(body))
		}
	}

	// A withdrawn application cannot be approved
	{
		st, _ := doReq(t, ts.URL, "PUT", "/shelters/applications/"+requestID+"/status", admin, "admin", map[string]any{
			"approve": true,
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 approve withdrawn, got %d", st)
		}
	}

	// Admin list sees it; the pending-only filter does not
	{
		st, body := doReq(t, ts.URL, "GET", "/shelters/applications", admin, "admin", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d body=%s", st, string(body))
		}
		if !bytes.Contains(body, []byte(requestID)) {
			t.Fatalf("expected list to contain %s: %s", requestID, string(body))
		}

		st, body = doReq(t, ts.URL, "GET", "/shelters/applications?isApproved=true", admin, "admin", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 filtered list, got %d body=%s", st, string(body))
		}
		if bytes.Contains(body, []byte(requestID)) {
			t.Fatalf("approved filter should exclude withdrawn application: %s", string(body))
		}
	}

	// Non-admin list is forbidden
	{
		st, _ := doReq(t, ts.URL, "GET", "/shelters/applications", applicant, "", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 list by non-admin, got %d", st)
		}
	}
}

func TestHTTP_ShelterListFilters(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	admin := "admin-1"

	for _, s := range []map[string]any{
		{"name": "Happy Paws", "address": map[string]any{"city": "Lima"}},
		{"name": "Whiskers Haven", "address": map[string]any{"city": "Cusco"}},
	} {
		st, body := doReq(t, ts.URL, "POST", "/shelters", admin, "admin", s)
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create shelter, got %d body=%s", st, string(body))
		}
	}

	st, body := doReq(t, ts.URL, "GET", "/shelters?city=lima", "", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list, got %d body=%s", st, string(body))
	}
	if !bytes.Contains(body, []byte("Happy Paws")) || bytes.Contains(body, []byte("Whiskers Haven")) {
		t.Fatalf("city filter off: %s", string(body))
	}

	// Unknown sort columns fall back to name instead of failing
	st, _ = doReq(t, ts.URL, "GET", "/shelters?sortBy=bogus", "", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 with bogus sortBy, got %d", st)
	}
}
