package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"farm-livestock-records/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dateLayout = time.DateOnly

func TestHTTP_EndToEnd_HerdLifecycle(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	today := time.Now()
	farmer := "farmer-1"

	// 1) Alta de una vaquillona y un toro
	cowID := createAnimal(t, ts.URL, farmer, map[string]any{
		"tag":           "AR-0042",
		"species":       "cattle",
		"breed":         "angus",
		"sex":           "female",
		"date_of_birth": time.Date(today.Year()-3, today.Month(), 1, 0, 0, 0, 0, time.UTC).Format(dateLayout),
	})
	bullID := createAnimal(t, ts.URL, farmer, map[string]any{
		"tag":           "AR-0001",
		"species":       "cattle",
		"sex":           "male",
		"date_of_birth": time.Date(today.Year()-4, today.Month(), 1, 0, 0, 0, 0, time.UTC).Format(dateLayout),
	})

	{
		st, body := doReq(t, ts.URL, "GET", "/animals/"+cowID, "", nil)
		require.Equal(t, http.StatusOK, st, string(body))
		var p map[string]any
		require.NoError(t, json.Unmarshal(body, &p))
		assert.Equal(t, "Heifer", p["category"])
		assert.Equal(t, "Angus", p["breed"])
		assert.EqualValues(t, 36, p["age_months"])
	}

	// 2) Antibiótico hace dos días: retiro activo y chequeo a los 3 días
	administered := today.AddDate(0, 0, -2)
	var treatmentID string
	{
		st, body := doReq(t, ts.URL, "POST", "/animals/"+cowID+"/treatments", "vet-7", map[string]any{
			"type":            "Antibiotics",
			"administered_at": administered.Format(dateLayout),
			"product":         "Oxytetracycline",
			"dose":            "20 ml",
		})
		require.Equal(t, http.StatusCreated, st, string(body))
		var tr map[string]any
		require.NoError(t, json.Unmarshal(body, &tr))
		treatmentID, _ = tr["id"].(string)
		require.NotEmpty(t, treatmentID)
		assert.Equal(t, administered.AddDate(0, 0, 21).Format(dateLayout), tr["withdrawal_end_date"])
		assert.Equal(t, true, tr["in_withdrawal"])
		assert.Equal(t, administered.AddDate(0, 0, 3).Format(dateLayout), tr["next_checkup"])
		assert.Equal(t, "vet-7", tr["recorded_by"])
	}

	// 3) Chequeo hoy sin recuperación: próximo chequeo en 3 días
	{
		st, body := doReq(t, ts.URL, "POST", "/animals/"+cowID+"/treatments/"+treatmentID+"/checkups", "vet-7", map[string]any{
			"checked_at": today.Format(dateLayout),
		})
		require.Equal(t, http.StatusCreated, st, string(body))
		var tr map[string]any
		require.NoError(t, json.Unmarshal(body, &tr))
		assert.Equal(t, today.AddDate(0, 0, 3).Format(dateLayout), tr["next_checkup"])
	}
	// chequeo anterior al último => 409
	{
		st, body := doReq(t, ts.URL, "POST", "/animals/"+cowID+"/treatments/"+treatmentID+"/checkups", "", map[string]any{
			"checked_at": administered.AddDate(0, 0, -1).Format(dateLayout),
		})
		assert.Equal(t, http.StatusConflict, st, string(body))
	}

	// 4) Servicio hace 85 días: tacto por vencer
	{
		st, body := doReq(t, ts.URL, "POST", "/breeding", farmer, map[string]any{
			"dam_id":        cowID,
			"sire_id":       bullID,
			"breeding_date": today.AddDate(0, 0, -85).Format(dateLayout),
		})
		require.Equal(t, http.StatusCreated, st, string(body))
		var br map[string]any
		require.NoError(t, json.Unmarshal(body, &br))
		assert.Equal(t, "due_soon", br["pregnancy_check_status"])
	}

	// 5) La vaquillona servida pasa a vaca
	{
		st, body := doReq(t, ts.URL, "GET", "/animals/"+cowID, "", nil)
		require.Equal(t, http.StatusOK, st, string(body))
		var p map[string]any
		require.NoError(t, json.Unmarshal(body, &p))
		assert.Equal(t, "Cow", p["category"])
		assert.Equal(t, true, p["has_bred"])
	}

	// 6) Pendientes del rodeo
	{
		st, body := doReq(t, ts.URL, "GET", "/reminders", "", nil)
		require.Equal(t, http.StatusOK, st, string(body))
		var items []map[string]any
		require.NoError(t, json.Unmarshal(body, &items))
		kinds := map[string]bool{}
		for _, it := range items {
			kinds[it["kind"].(string)] = true
		}
		assert.True(t, kinds["checkup"])
		assert.True(t, kinds["pregnancy_check"])

		st, _ = doReq(t, ts.URL, "GET", "/reminders?kind=pregnancy_check&status=overdue", "", nil)
		assert.Equal(t, http.StatusOK, st)
		st, _ = doReq(t, ts.URL, "GET", "/reminders?status=completed", "", nil)
		assert.Equal(t, http.StatusBadRequest, st)
	}

	// 7) Historial con autoría
	{
		st, body := doReq(t, ts.URL, "GET", "/animals/"+cowID+"/activity", "", nil)
		require.Equal(t, http.StatusOK, st, string(body))
		var entries []map[string]any
		require.NoError(t, json.Unmarshal(body, &entries))
		types := map[string]string{}
		for _, e := range entries {
			types[e["type"].(string)] = e["actor_id"].(string)
		}
		assert.Equal(t, farmer, types["ANIMAL_REGISTERED"])
		assert.Equal(t, "vet-7", types["TREATMENT_LOGGED"])
		assert.Contains(t, types, "CHECKUP_RECORDED")
		assert.Contains(t, types, "BREEDING_RECORDED")
		assert.Contains(t, types, "PROFILE_UPDATED")
	}
}

func TestHTTP_Errors(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	today := time.Now()

	st, _ := doReq(t, ts.URL, "GET", "/animals/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, st)

	st, _ = doReq(t, ts.URL, "GET", "/animals/nope/activity", "", nil)
	assert.Equal(t, http.StatusNotFound, st)

	st, _ = doReq(t, ts.URL, "POST", "/animals/nope/treatments", "", map[string]any{
		"type": "VACCINE", "administered_at": today.Format(dateLayout),
	})
	assert.Equal(t, http.StatusNotFound, st)

	// nacimiento futuro
	st, _ = doReq(t, ts.URL, "POST", "/animals", "", map[string]any{
		"tag": "X", "species": "goat", "sex": "female",
		"date_of_birth": today.AddDate(0, 0, 2).Format(dateLayout),
	})
	assert.Equal(t, http.StatusBadRequest, st)

	goatID := createAnimal(t, ts.URL, "", map[string]any{
		"tag": "G-1", "species": "goat", "sex": "female",
		"date_of_birth": today.AddDate(-1, 0, -10).Format(dateLayout),
	})

	// fin de retiro que no coincide con el calculado
	st, _ = doReq(t, ts.URL, "POST", "/animals/"+goatID+"/treatments", "", map[string]any{
		"type": "DEWORMER", "administered_at": today.Format(dateLayout),
		"withdrawal_end_date": today.AddDate(0, 0, 7).Format(dateLayout),
	})
	assert.Equal(t, http.StatusBadRequest, st)

	// tratamiento anterior al nacimiento
	st, _ = doReq(t, ts.URL, "POST", "/animals/"+goatID+"/treatments", "", map[string]any{
		"type": "VITAMINS", "administered_at": today.AddDate(-2, 0, 0).Format(dateLayout),
	})
	assert.Equal(t, http.StatusConflict, st)

	// nacimiento movido después de un tratamiento ya cargado
	st, _ = doReq(t, ts.URL, "POST", "/animals/"+goatID+"/treatments", "", map[string]any{
		"type": "DEWORMER", "administered_at": today.AddDate(0, 0, -10).Format(dateLayout),
	})
	assert.Equal(t, http.StatusCreated, st)
	st, _ = doReq(t, ts.URL, "PATCH", "/animals/"+goatID, "", map[string]any{
		"date_of_birth": today.AddDate(0, 0, -2).Format(dateLayout),
	})
	assert.Equal(t, http.StatusConflict, st)

	// especie y sexo no se editan
	st, _ = doReq(t, ts.URL, "PATCH", "/animals/"+goatID, "", map[string]any{"sex": "male"})
	assert.Equal(t, http.StatusBadRequest, st)

	// madre inexistente
	st, _ = doReq(t, ts.URL, "POST", "/breeding", "", map[string]any{
		"dam_id": "nope", "breeding_date": today.Format(dateLayout),
	})
	assert.Equal(t, http.StatusBadRequest, st)
}

func TestHTTP_EngineAndDocs(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "POST", "/engine/classify", "", map[string]any{
		"species": "sheep", "sex": "female", "age_months": 14, "has_bred": true,
	})
	require.Equal(t, http.StatusOK, st, string(body))
	assert.Contains(t, string(body), `"category":"Ewe"`)

	st, _ = doReq(t, ts.URL, "GET", "/policy", "", nil)
	assert.Equal(t, http.StatusOK, st)

	st, _ = doReq(t, ts.URL, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, st)

	st, body = doReq(t, ts.URL, "GET", "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, st)
	assert.Contains(t, string(body), "/engine/withdrawal")
}

func createAnimal(t *testing.T, baseURL, actorID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/animals", actorID, payload)
	require.Equal(t, http.StatusCreated, st, "create animal: %s", string(body))

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	require.NotEmpty(t, resp.ID, "create animal: missing id body=%s", string(body))
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, actorID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if actorID != "" {
		req.Header.Set("X-Actor-ID", actorID)
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
