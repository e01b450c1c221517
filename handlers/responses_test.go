// Copyright (c) 2026 Veilpoll Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/veilpoll/veilpoll/models"
	"github.com/veilpoll/veilpoll/registry"
	"github.com/veilpoll/veilpoll/testutil"
)

func submitReq(token string, pollID string, payload models.ResponsePayload) *http.Request {
	req := testutil.MakeRequest("POST", "/polls/"+pollID+"/responses", models.SubmitResponseRequest{
		Ciphertext: payload.Ciphertext,
		Proof:      payload.Proof,
	}, map[string]string{"X-Identity-Token": token})
	req.SetPathValue("id", pollID)
	return req
}

func TestSubmitResponseHandler(t *testing.T) {
	cfg := testutil.NewTestConfig()
	reg := registry.New()
	handler := NewResponseHandler(reg, cfg)
	creator, _ := testutil.NewIdentity(t, cfg)
	respondent, token := testutil.NewIdentity(t, cfg)
	testutil.CreateTestPoll(t, reg, creator)

	t.Run("missing token", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/polls/0/responses", models.SubmitResponseRequest{}, nil)
		req.SetPathValue("id", "0")
		w := httptest.NewRecorder()
		handler.SubmitResponse(w, req)
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("success", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.SubmitResponse(w, submitReq(token, "0", testutil.Payload(0x01)))
		testutil.AssertStatus(t, w, http.StatusCreated)

		poll, _ := reg.Poll(0)
		if poll.ResponseCount != 1 {
			t.Errorf("ResponseCount = %d, want 1", poll.ResponseCount)
		}
		if !reg.HasResponded(0, respondent) {
			t.Error("registry does not record the respondent")
		}
	})

	t.Run("duplicate", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.SubmitResponse(w, submitReq(token, "0", testutil.Payload(0x02)))
		testutil.AssertStatus(t, w, http.StatusConflict)

		poll, _ := reg.Poll(0)
		if poll.ResponseCount != 1 {
			t.Errorf("ResponseCount = %d after duplicate, want 1", poll.ResponseCount)
		}
	})

	t.Run("malformed payload", func(t *testing.T) {
		_, otherToken := testutil.NewIdentity(t, cfg)
		req := testutil.MakeRequest("POST", "/polls/0/responses", models.SubmitResponseRequest{
			Ciphertext: []byte{0x01, 0x02},
		}, map[string]string{"X-Identity-Token": otherToken})
		req.SetPathValue("id", "0")
		w := httptest.NewRecorder()
		handler.SubmitResponse(w, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("unknown poll", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.SubmitResponse(w, submitReq(token, "42", testutil.Payload(0x03)))
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestSubmitResponseHandlerExpired(t *testing.T) {
	cfg := testutil.NewTestConfig()
	clk := testutil.NewClock(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	reg := registry.New(registry.WithClock(clk.Now))
	handler := NewResponseHandler(reg, cfg)
	creator, _ := testutil.NewIdentity(t, cfg)
	_, token := testutil.NewIdentity(t, cfg)

	if _, err := reg.CreatePoll(creator, "Rate the service", 1, 5, clk.Now().Add(time.Minute)); err != nil {
		t.Fatalf("CreatePoll() error = %v", err)
	}
	clk.Advance(2 * time.Minute)

	w := httptest.NewRecorder()
	handler.SubmitResponse(w, submitReq(token, "0", testutil.Payload(0x01)))
	testutil.AssertStatus(t, w, http.StatusConflict)

	// Expired by time, yet the stored flag is untouched
	poll, _ := reg.Poll(0)
	if !poll.IsActive {
		t.Error("IsActive = false, expiry must not be persisted")
	}
}

func TestGetResponsesHandler(t *testing.T) {
	cfg := testutil.NewTestConfig()
	reg := registry.New()
	handler := NewResponseHandler(reg, cfg)
	creator, _ := testutil.NewIdentity(t, cfg)
	testutil.CreateTestPoll(t, reg, creator)

	r1, _ := testutil.NewIdentity(t, cfg)
	r2, _ := testutil.NewIdentity(t, cfg)
	reg.SubmitResponse(0, r1, testutil.Payload(0x01))
	reg.SubmitResponse(0, r2, testutil.Payload(0x02))

	req := testutil.MakeRequest("GET", "/polls/0/responses", nil, nil)
	req.SetPathValue("id", "0")
	w := httptest.NewRecorder()
	handler.GetResponses(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var view models.ResponsesView
	testutil.AssertJSON(t, w, &view)
	if len(view.Responses) != 2 {
		t.Fatalf("Responses len = %d, want 2", len(view.Responses))
	}
	if view.Responses[0].RespondentID != r1 || view.Responses[1].RespondentID != r2 {
		t.Error("responses not in submission order")
	}

	req = testutil.MakeRequest("GET", "/polls/9/responses", nil, nil)
	req.SetPathValue("id", "9")
	w = httptest.NewRecorder()
	handler.GetResponses(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestCheckRespondedHandler(t *testing.T) {
	cfg := testutil.NewTestConfig()
	reg := registry.New()
	handler := NewResponseHandler(reg, cfg)
	creator, _ := testutil.NewIdentity(t, cfg)
	respondent, _ := testutil.NewIdentity(t, cfg)
	testutil.CreateTestPoll(t, reg, creator)
	reg.SubmitResponse(0, respondent, testutil.Payload(0x01))

	check := func(pollID, identity string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("GET", "/polls/"+pollID+"/responded?identity="+identity, nil, nil)
		req.SetPathValue("id", pollID)
		w := httptest.NewRecorder()
		handler.CheckResponded(w, req)
		return w
	}

	w := check("0", respondent)
	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.RespondedResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.Responded {
		t.Error("Responded = false for recorded respondent")
	}

	w = check("0", creator)
	testutil.AssertJSON(t, w, &resp)
	if resp.Responded {
		t.Error("Responded = true for identity that never submitted")
	}

	// Unknown poll is not an error, just false
	w = check("42", respondent)
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &resp)
	if resp.Responded {
		t.Error("Responded = true for unknown poll")
	}

	// Missing identity parameter is a bad request
	req := testutil.MakeRequest("GET", "/polls/0/responded", nil, nil)
	req.SetPathValue("id", "0")
	w = httptest.NewRecorder()
	handler.CheckResponded(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}
