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

func TestHTTP_EndToEnd_AdoptionLifecycle(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	ownerID := "owner-1"
	adopterID := "adopter-1"

	// 1) Owner publica una mascota
	petID := createPet(t, ts.URL, ownerID, map[string]any{
		"name":    "Milo",
		"species": "dog",
		"breed":   "mixed",
		"sex":     "male",
	})

	// 2) Adopter manda solicitud
	requestID := submitAdoption(t, ts.URL, adopterID, petID, "Me encantaría adoptarlo")

	// 3) Un tercero no puede ver la solicitud
	{
		st, _ := doReq(t, ts.URL, "GET", "/adoptions/"+requestID, "intruso-1", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 for stranger, got %d", st)
		}
	}

	// 4) El adopter no puede responderse a sí mismo
	{
		st, _ := doReq(t, ts.URL, "POST", "/adoptions/"+requestID+"/respond", adopterID, map[string]any{
			"accept": true,
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 respond by requester, got %d", st)
		}
	}

	// 5) Owner acepta: transición + fan-out completo
	{
		st, body := doReq(t, ts.URL, "POST", "/adoptions/"+requestID+"/respond", ownerID, map[string]any{
			"accept": true,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 respond accept, got %d body=%s", st, string(body))
		}

		var out struct {
			Status      string `json:"status"`
			SideEffects []struct {
				Step string `json:"step"`
				OK   bool   `json:"ok"`
			} `json:"side_effects"`
		}
		_ = json.Unmarshal(body, &out)
		if out.Status != "accepted" {
			t.Fatalf("expected status accepted, got %s body=%s", out.Status, string(body))
		}
		if len(out.SideEffects) != 3 {
			t.Fatalf("expected 3 side effects, got %+v", out.SideEffects)
		}
		for _, s := range out.SideEffects {
			if !s.OK {
				t.Fatalf("expected all side effects OK, got %+v", out.SideEffects)
			}
		}
	}

	// 6) El adopter ve el chat recién creado
	{
		st, body := doReq(t, ts.URL, "GET", "/me/chats", adopterID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list chats, got %d body=%s", st, string(body))
		}
		var threads []struct {
			ID                string `json:"id"`
			AdoptionRequestID string `json:"adoption_request_id"`
		}
		_ = json.Unmarshal(body, &threads)
		if len(threads) != 1 || threads[0].AdoptionRequestID != requestID {
			t.Fatalf("expected 1 thread for request, got %s", string(body))
		}
	}

	// 7) Y la notificación de aceptación
	{
		st, body := doReq(t, ts.URL, "GET", "/me/notifications", adopterID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list notifications, got %d body=%s", st, string(body))
		}
		var items []struct {
			Type string `json:"type"`
		}
		_ = json.Unmarshal(body, &items)
		found := false
		for _, n := range items {
			if n.Type == "adoption_accepted" {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected adoption_accepted notification, got %s", string(body))
		}
	}

	// 8) Responder de nuevo => 409 con el status vigente
	{
		st, body := doReq(t, ts.URL, "POST", "/adoptions/"+requestID+"/respond", ownerID, map[string]any{
			"accept": true,
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 on double respond, got %d body=%s", st, string(body))
		}
	}

	// 9) Owner completa la adopción
	{
		st, body := doReq(t, ts.URL, "POST", "/adoptions/"+requestID+"/complete", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 complete, got %d body=%s", st, string(body))
		}
		var out struct {
			Status string `json:"status"`
		}
		_ = json.Unmarshal(body, &out)
		if out.Status != "adopted" {
			t.Fatalf("expected status adopted, got %s", out.Status)
		}
	}

	// 10) La mascota quedó adoptada, con el adopter estampado
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+petID, adopterID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get pet, got %d body=%s", st, string(body))
		}
		var pet struct {
			Status    string  `json:"status"`
			AdoptedBy *string `json:"adopted_by"`
		}
		_ = json.Unmarshal(body, &pet)
		if pet.Status != "adopted" {
			t.Fatalf("expected pet adopted, got %s", string(body))
		}
		if pet.AdoptedBy == nil || *pet.AdoptedBy != adopterID {
			t.Fatalf("expected adopted_by=%s, got %s", adopterID, string(body))
		}
	}

	// 11) Completar de nuevo => 409
	{
		st, _ := doReq(t, ts.URL, "POST", "/adoptions/"+requestID+"/complete", ownerID, nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 on double complete, got %d", st)
		}
	}

	// 12) El libro de adopciones registra el cierre, para ambas partes
	for _, userID := range []string{ownerID, adopterID} {
		st, body := doReq(t, ts.URL, "GET", "/me/adoptions/history", userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 history for %s, got %d body=%s", userID, st, string(body))
		}
		var recs []struct {
			RequestID string `json:"request_id"`
			AdopterID string `json:"adopter_id"`
		}
		_ = json.Unmarshal(body, &recs)
		if len(recs) != 1 || recs[0].RequestID != requestID || recs[0].AdopterID != adopterID {
			t.Fatalf("unexpected history for %s: %s", userID, string(body))
		}
	}
}

func TestHTTP_Submit_OwnPet_Rejected(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	petID := createPet(t, ts.URL, "owner-1", map[string]any{
		"name":    "Luna",
		"species": "cat",
	})

	st, _ := doReq(t, ts.URL, "POST", "/pets/"+petID+"/adoptions", "owner-1", map[string]any{
		"message": "mi propia gata",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 submitting for own pet, got %d", st)
	}
}

func TestHTTP_Submit_AdoptedPet_Conflict(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	petID := createPet(t, ts.URL, "owner-1", map[string]any{
		"name":    "Rocky",
		"species": "dog",
	})
	requestID := submitAdoption(t, ts.URL, "adopter-1", petID, "")

	// ciclo completo: accept + complete
	if st, _ := doReq(t, ts.URL, "POST", "/adoptions/"+requestID+"/respond", "owner-1", map[string]any{"accept": true}); st != http.StatusOK {
		t.Fatalf("accept failed: %d", st)
	}
	if st, _ := doReq(t, ts.URL, "POST", "/adoptions/"+requestID+"/complete", "owner-1", nil); st != http.StatusOK {
		t.Fatalf("complete failed: %d", st)
	}

	// una solicitud nueva sobre la mascota adoptada => 409
	st, _ := doReq(t, ts.URL, "POST", "/pets/"+petID+"/adoptions", "adopter-2", nil)
	if st != http.StatusConflict {
		t.Fatalf("expected 409 for adopted pet, got %d", st)
	}
}

func TestHTTP_ListSent_StatusFilter(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	petID := createPet(t, ts.URL, "owner-1", map[string]any{
		"name":    "Nala",
		"species": "cat",
	})
	submitAdoption(t, ts.URL, "adopter-1", petID, "")

	for filter, want := range map[string]int{"pending": 1, "adopted": 0, "": 1} {
		path := "/me/adoptions"
		if filter != "" {
			path += "?status=" + filter
		}
		st, body := doReq(t, ts.URL, "GET", path, "adopter-1", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 listing (%q), got %d", filter, st)
		}
		var items []struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &items)
		if len(items) != want {
			t.Fatalf("filter %q: expected %d items, got %s", filter, want, string(body))
		}
	}
}

func TestHTTP_Unauthenticated_Rejected(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	st, _ := doReq(t, ts.URL, "GET", "/me/adoptions", "", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", st)
	}
}

func createPet(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/pets", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create pet: missing id body=%s", string(body))
	}
	return resp.ID
}

func submitAdoption(t *testing.T, baseURL, userID, petID, message string) string {
	t.Helper()

	var payload map[string]any
	if message != "" {
		payload = map[string]any{"message": message}
	}

	st, body := doReq(t, baseURL, "POST", "/pets/"+petID+"/adoptions", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 submit adoption, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" || resp.Status != "pending" {
		t.Fatalf("submit adoption: unexpected body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
