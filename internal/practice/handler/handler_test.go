package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	identityservice "counsel/internal/identity/service"
	identitystore "counsel/internal/identity/store"
	"counsel/internal/practice/models"
	"counsel/internal/practice/service"
	"counsel/internal/practice/store"
	id "counsel/pkg/domain"
	"counsel/pkg/testutil"
)

type fixture struct {
	router http.Handler
	store  *store.InMemory
	lawyer string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	people := identitystore.NewInMemory()
	require.NoError(t, identitystore.SeedDemo(context.Background(), people))

	st := store.NewInMemory()
	router := chi.NewRouter()
	New(service.New(st, identityservice.New(people)), zap.NewNop()).Register(router)
	return fixture{router: router, store: st, lawyer: identitystore.DemoLawyerID.String()}
}

func TestPrecedents(t *testing.T) {
	f := newFixture(t)
	path := "/lawyers/" + f.lawyer + "/precedents"

	t.Run("add then list", func(t *testing.T) {
		req := testutil.AsLawyer(testutil.NewJSONRequest(t, http.MethodPost, path, map[string]string{
			"title":    "Gideon v. Wainwright",
			"citation": "372 U.S. 335",
		}), f.lawyer)
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusCreated)
		testutil.AssertJSONContains(t, rr, "title", "Gideon v. Wainwright")

		rr = testutil.DoRequest(f.router, testutil.AsLawyer(testutil.NewRequest(t, http.MethodGet, path), f.lawyer))
		testutil.AssertStatusOK(t, rr)
		resp := testutil.UnmarshalResponse[PrecedentListResponse](t, rr)
		require.Len(t, resp.Precedents, 1)
		assert.Equal(t, "372 U.S. 335", resp.Precedents[0].Citation)
	})

	t.Run("another lawyer is forbidden", func(t *testing.T) {
		req := testutil.AsLawyer(testutil.NewRequest(t, http.MethodGet, path), identitystore.DemoLawyer2ID.String())
		testutil.AssertStatusAndError(t, testutil.DoRequest(f.router, req), http.StatusForbidden, "forbidden")
	})

	t.Run("prisoner is forbidden", func(t *testing.T) {
		req := testutil.AsPrisoner(testutil.NewJSONRequest(t, http.MethodPost, path, map[string]string{"title": "x"}), f.lawyer)
		testutil.AssertStatusAndError(t, testutil.DoRequest(f.router, req), http.StatusForbidden, "forbidden")
	})

	t.Run("schema violations", func(t *testing.T) {
		for name, body := range map[string]string{
			"missing title": `{}`,
			"unknown field": `{"title":"x","court":"y"}`,
			"wrong type":    `{"title":7}`,
		} {
			t.Run(name, func(t *testing.T) {
				req := testutil.AsLawyer(testutil.NewRequestWithBody(t, http.MethodPost, path, body), f.lawyer)
				testutil.AssertStatusAndError(t, testutil.DoRequest(f.router, req), http.StatusBadRequest, "bad_request")
			})
		}
	})

	t.Run("blank title", func(t *testing.T) {
		req := testutil.AsLawyer(testutil.NewRequestWithBody(t, http.MethodPost, path, `{"title":"   "}`), f.lawyer)
		testutil.AssertStatusAndError(t, testutil.DoRequest(f.router, req), http.StatusBadRequest, "validation_error")
	})

	t.Run("unknown lawyer", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/lawyers/"+uuid.NewString()+"/precedents", map[string]string{"title": "x"})
		testutil.AssertStatusAndError(t, testutil.DoRequest(f.router, req), http.StatusNotFound, "not_found")
	})

	t.Run("malformed lawyer id", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/lawyers/nope/precedents"))
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "invalid_input")
	})
}

func TestMeetings(t *testing.T) {
	f := newFixture(t)
	path := "/lawyers/" + f.lawyer + "/meetings"
	at := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)

	t.Run("schedule then list", func(t *testing.T) {
		req := testutil.AsLawyer(testutil.NewJSONRequest(t, http.MethodPost, path, map[string]string{
			"prisoner_id":  identitystore.DemoPrisonerID.String(),
			"scheduled_at": at.Format(time.RFC3339),
			"location":     "Visiting room B",
		}), f.lawyer)
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusCreated)

		rr = testutil.DoRequest(f.router, testutil.AsLawyer(testutil.NewRequest(t, http.MethodGet, path), f.lawyer))
		testutil.AssertStatusOK(t, rr)
		resp := testutil.UnmarshalResponse[MeetingListResponse](t, rr)
		require.Len(t, resp.Meetings, 1)
		assert.Equal(t, identitystore.DemoPrisonerID.String(), resp.Meetings[0].PrisonerID)
		assert.True(t, at.Equal(resp.Meetings[0].ScheduledAt))
	})

	t.Run("bad timestamp", func(t *testing.T) {
		req := testutil.AsLawyer(testutil.NewJSONRequest(t, http.MethodPost, path, map[string]string{
			"prisoner_id":  identitystore.DemoPrisonerID.String(),
			"scheduled_at": "next tuesday",
		}), f.lawyer)
		testutil.AssertStatusAndError(t, testutil.DoRequest(f.router, req), http.StatusBadRequest, "invalid_input")
	})

	t.Run("unknown prisoner", func(t *testing.T) {
		req := testutil.AsLawyer(testutil.NewJSONRequest(t, http.MethodPost, path, map[string]string{
			"prisoner_id":  uuid.NewString(),
			"scheduled_at": at.Format(time.RFC3339),
		}), f.lawyer)
		testutil.AssertStatusAndError(t, testutil.DoRequest(f.router, req), http.StatusNotFound, "not_found")
	})

	t.Run("in the past", func(t *testing.T) {
		req := testutil.AsLawyer(testutil.NewJSONRequest(t, http.MethodPost, path, map[string]string{
			"prisoner_id":  identitystore.DemoPrisonerID.String(),
			"scheduled_at": time.Now().Add(-time.Hour).Format(time.RFC3339),
		}), f.lawyer)
		testutil.AssertStatusAndError(t, testutil.DoRequest(f.router, req), http.StatusBadRequest, "validation_error")
	})
}

func TestAppearances(t *testing.T) {
	f := newFixture(t)
	lawyer := identitystore.DemoLawyerID
	caseID := id.CaseID(uuid.New())
	require.NoError(t, f.store.SaveAppearance(context.Background(), &models.Appearance{
		ID: uuid.New(), LawyerID: lawyer, CaseID: caseID, Court: "County Superior Court",
		AppearedAt: time.Now().Add(-24 * time.Hour), Outcome: "continued",
	}))

	rr := testutil.DoRequest(f.router, testutil.AsLawyer(testutil.NewRequest(t, http.MethodGet, "/lawyers/"+f.lawyer+"/appearances"), f.lawyer))
	testutil.AssertStatusOK(t, rr)
	resp := testutil.UnmarshalResponse[AppearanceListResponse](t, rr)
	require.Len(t, resp.Appearances, 1)
	assert.Equal(t, caseID.String(), resp.Appearances[0].CaseID)

	t.Run("empty list is an empty array", func(t *testing.T) {
		other := identitystore.DemoLawyer2ID.String()
		rr := testutil.DoRequest(f.router, testutil.AsLawyer(testutil.NewRequest(t, http.MethodGet, "/lawyers/"+other+"/appearances"), other))
		testutil.AssertStatusOK(t, rr)
		assert.JSONEq(t, `{"appearances":[]}`, rr.Body.String())
	})
}
