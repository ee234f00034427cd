package ghost

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AjinkyaSambare/razorpay-integration/internal/types/member"
)

const (
	testKeyID     = "64f1a2b3c4d5e6f7a8b9c0d1"
	testHexSecret = "aabbccdd00112233445566778899aabbccdd00112233445566778899aabbccdd"
)

func testAdminKey() string {
	return testKeyID + ":" + testHexSecret
}

func TestNewClientRejectsMalformedKey(t *testing.T) {
	_, err := NewClient("https://example.com/ghost/api/admin", "not-a-key")
	require.Error(t, err)

	_, err = NewClient("https://example.com/ghost/api/admin", "id:not-hex!")
	require.Error(t, err)
}

func TestRequestCarriesSignedAdminToken(t *testing.T) {
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{"members": []interface{}{}})
	}))
	defer server.Close()

	c, err := NewClient(server.URL, testAdminKey())
	require.NoError(t, err)

	_, err = c.BrowseMembersByEmail(context.Background(), "a@example.com")
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(authHeader, "Ghost "), "authorization scheme must be Ghost")
	raw := strings.TrimPrefix(authHeader, "Ghost ")

	secret, err := hex.DecodeString(testHexSecret)
	require.NoError(t, err)

	token, err := jwt.Parse(raw, func(tok *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithAudience("/admin/"))
	require.NoError(t, err, "token must verify against the decoded admin secret")
	assert.Equal(t, testKeyID, token.Header["kid"])
}

func TestBrowseMembersByEmailFilter(t *testing.T) {
	var gotPath, gotFilter string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotFilter = r.URL.Query().Get("filter")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"members": []map[string]interface{}{
				{"id": "member_1", "email": "a@example.com"},
			},
		})
	}))
	defer server.Close()

	c, err := NewClient(server.URL, testAdminKey())
	require.NoError(t, err)

	members, err := c.BrowseMembersByEmail(context.Background(), "a@example.com")
	require.NoError(t, err)

	assert.Equal(t, "/members/", gotPath)
	assert.Equal(t, "email:'a@example.com'", gotFilter)
	require.Len(t, members, 1)
	assert.Equal(t, "member_1", members[0].ID)
}

func TestCreateMemberEnvelope(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string][]member.Member
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)

		created := gotBody["members"][0]
		created.ID = "member_new"
		json.NewEncoder(w).Encode(map[string][]member.Member{"members": {created}})
	}))
	defer server.Close()

	c, err := NewClient(server.URL, testAdminKey())
	require.NoError(t, err)

	created, err := c.CreateMember(context.Background(), member.Member{
		Email:      "new@example.com",
		Subscribed: true,
		Labels:     []member.Label{{Name: "razorpay-customer"}},
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/members/", gotPath)
	require.Len(t, gotBody["members"], 1)
	assert.True(t, gotBody["members"][0].Subscribed)
	assert.Equal(t, "member_new", created.ID)
}

func TestUpdateMemberEnvelope(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path

		var body map[string][]member.Member
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(body)
	}))
	defer server.Close()

	c, err := NewClient(server.URL, testAdminKey())
	require.NoError(t, err)

	updated, err := c.UpdateMember(context.Background(), "member_7", member.Member{
		ID:    "member_7",
		Email: "a@example.com",
		Note:  "Razorpay payment: pay_1",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/members/member_7/", gotPath)
	assert.Equal(t, "member_7", updated.ID)
}

func TestNon2xxBecomesError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"errors":[{"message":"Validation error"}]}`))
	}))
	defer server.Close()

	c, err := NewClient(server.URL, testAdminKey())
	require.NoError(t, err)

	_, err = c.CreateMember(context.Background(), member.Member{Email: "bad"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}
