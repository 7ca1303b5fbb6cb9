package handlers_test

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/dom/hero-service/internal/domain"
	"github.com/dom/hero-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type HeroResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Intelligence *int   `json:"intelligence"`
	Strength     *int   `json:"strength"`
	Speed        *int   `json:"speed"`
	Power        *int   `json:"power"`
	Source       string `json:"source"`
}

type HeroListResponse struct {
	Heroes []HeroResponse `json:"heroes"`
}

func postHero(t *testing.T, ts *testutil.TestServer, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.HeroURL(""), "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func getHeroes(t *testing.T, ts *testutil.TestServer, rawQuery string) *http.Response {
	t.Helper()
	resp, err := http.Get(ts.HeroURL(rawQuery))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHeroHandler_Create(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.Source.Add(testutil.NewHeroBuilder("Batman").WithStats(100, 26, 27, 47).Hero())

	tests := []struct {
		name           string
		body           string
		sourceErr      error
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "hero found at source",
			body:           `{"name": "Batman"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing name",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  `Parameter "name" is required`,
		},
		{
			name:           "empty name",
			body:           `{"name": "  "}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  `Parameter "name" is required`,
		},
		{
			name:           "malformed body",
			body:           `{"name":`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid request body",
		},
		{
			name:           "hero unknown to source",
			body:           `{"name": "Nobody"}`,
			expectedStatus: http.StatusNotFound,
			expectedError:  `Hero "Nobody" not found`,
		},
		{
			name:           "source unavailable",
			body:           `{"name": "Batman"}`,
			sourceErr:      domain.ErrSourceUnavailable,
			expectedStatus: http.StatusBadGateway,
			expectedError:  "Hero source unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.DB.Truncate(t)
			ts.Source.Err = tt.sourceErr
			defer func() { ts.Source.Err = nil }()

			resp := postHero(t, ts, tt.body)

			if tt.expectedError != "" {
				testutil.AssertErrorResponse(t, resp, tt.expectedStatus, tt.expectedError)
				return
			}

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			var hero HeroResponse
			testutil.AssertJSONResponse(t, resp, &hero)
			assert.Equal(t, "Batman", hero.Name)
			assert.NotEmpty(t, hero.ID)
			require.NotNil(t, hero.Intelligence)
			assert.Equal(t, 100, *hero.Intelligence)
			require.NotNil(t, hero.Power)
			assert.Equal(t, 47, *hero.Power)
		})
	}
}

func TestHeroHandler_CreateIsUpsert(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.Source.Add(testutil.NewHeroBuilder("Batman").WithStats(100, 26, 27, 47).Hero())

	// First create
	resp := postHero(t, ts, `{"name": "Batman"}`)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	// Source data changed between the two requests.
	ts.Source.Add(testutil.NewHeroBuilder("Batman").WithStats(95, 30, 27, 50).Hero())

	resp = postHero(t, ts, `{"name": "Batman"}`)
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var hero HeroResponse
	testutil.AssertJSONResponse(t, resp, &hero)
	require.NotNil(t, hero.Intelligence)
	assert.Equal(t, 95, *hero.Intelligence)

	// Exactly one stored row, holding the second call's values.
	resp = getHeroes(t, ts, "")
	var list HeroListResponse
	testutil.AssertJSONResponse(t, resp, &list)
	require.Len(t, list.Heroes, 1)
	require.NotNil(t, list.Heroes[0].Power)
	assert.Equal(t, 50, *list.Heroes[0].Power)
}

func TestHeroHandler_CreateThenListByName(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.Source.Add(testutil.NewHeroBuilder("Batman").WithStats(100, 26, 27, 47).Hero())

	resp := postHero(t, ts, `{"name": "Batman"}`)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	resp = getHeroes(t, ts, "name=Batman")
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var list HeroListResponse
	testutil.AssertJSONResponse(t, resp, &list)
	require.Len(t, list.Heroes, 1)
	assert.Equal(t, "Batman", list.Heroes[0].Name)
	require.NotNil(t, list.Heroes[0].Speed)
	assert.Equal(t, 27, *list.Heroes[0].Speed)
}

func TestHeroHandler_CreateNullStats(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ts.Source.Add(testutil.NewHeroBuilder("Mystery").WithNullStats().Hero())

	resp := postHero(t, ts, `{"name": "Mystery"}`)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var hero HeroResponse
	testutil.AssertJSONResponse(t, resp, &hero)
	assert.Nil(t, hero.Intelligence)
	assert.Nil(t, hero.Strength)
	assert.Nil(t, hero.Speed)
	assert.Nil(t, hero.Power)
}

func TestHeroHandler_List(t *testing.T) {
	ts := testutil.NewTestServer(t)

	seed := func() {
		testutil.NewHeroBuilder("Batman").WithStats(100, 26, 27, 47).Build(t, ts.DB.DB)
		testutil.NewHeroBuilder("Flash").WithStats(63, 10, 100, 100).Build(t, ts.DB.DB)
		testutil.NewHeroBuilder("Hulk").WithStats(88, 100, 63, 98).Build(t, ts.DB.DB)
	}

	tests := []struct {
		name           string
		rawQuery       string
		expectedStatus int
		expectedNames  []string
		expectedError  string
	}{
		{
			name:           "no parameters returns every record",
			rawQuery:       "",
			expectedStatus: http.StatusOK,
			expectedNames:  []string{"Batman", "Flash", "Hulk"},
		},
		{
			name:           "exact name",
			rawQuery:       "name=Batman",
			expectedStatus: http.StatusOK,
			expectedNames:  []string{"Batman"},
		},
		{
			name:           "range conjunction",
			rawQuery:       "intelligence__gte=80&power__lte=60",
			expectedStatus: http.StatusOK,
			expectedNames:  []string{"Batman"},
		},
		{
			name:           "equality and range combined",
			rawQuery:       "speed=100&power__gte=90",
			expectedStatus: http.StatusOK,
			expectedNames:  []string{"Flash"},
		},
		{
			name:           "zero matches is an empty array",
			rawQuery:       "strength__gte=200",
			expectedStatus: http.StatusOK,
			expectedNames:  []string{},
		},
		{
			name:           "unrecognized parameters ignored",
			rawQuery:       "alignment=good",
			expectedStatus: http.StatusOK,
			expectedNames:  []string{"Batman", "Flash", "Hulk"},
		},
		{
			name:           "non-numeric filter value",
			rawQuery:       "intelligence=abc",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid numeric filter value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts.DB.Truncate(t)
			seed()

			resp := getHeroes(t, ts, tt.rawQuery)

			if tt.expectedError != "" {
				testutil.AssertErrorResponse(t, resp, tt.expectedStatus, tt.expectedError)
				return
			}

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			var list HeroListResponse
			testutil.AssertJSONResponse(t, resp, &list)

			names := make([]string, len(list.Heroes))
			for i, h := range list.Heroes {
				names[i] = h.Name
			}
			assert.Equal(t, tt.expectedNames, names)
		})
	}
}
