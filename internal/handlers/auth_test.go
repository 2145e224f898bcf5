package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func profileRouter(db *mongo.Database, userID primitive.ObjectID) *gin.Engine {
	r := gin.New()
	r.PUT("/profile", func(c *gin.Context) {
		c.Set("userId", userID)
	}, UpdateProfile(db))
	return r
}

func putProfile(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/profile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateProfileMissingUserIsNotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("missing user", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "storefront.users", mtest.FirstBatch))

		w := putProfile(profileRouter(mt.DB, primitive.NewObjectID()), `{"name":"James Tan"}`)

		if w.Code != http.StatusNotFound {
			mt.Fatalf("status = %d, want 404 (body %s)", w.Code, w.Body.String())
		}
	})
}

func TestUpdateProfileStoreFaultIsServerError(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("store fault", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11600,
			Message: "interrupted at shutdown",
			Name:    "InterruptedAtShutdown",
		}))

		w := putProfile(profileRouter(mt.DB, primitive.NewObjectID()), `{"name":"James Tan"}`)

		if w.Code != http.StatusInternalServerError {
			mt.Fatalf("a store fault must not read as not-found: status = %d (body %s)", w.Code, w.Body.String())
		}
	})
}

func TestUpdateProfilePersistsMergedRecord(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("sparse patch", func(mt *mtest.T) {
		userID := primitive.NewObjectID()
		mt.AddMockResponses(
			// cursor id 0: single exhausted batch, no killCursors follow-up
			mtest.CreateCursorResponse(0, "storefront.users", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: userID},
				{Key: "name", Value: "James"},
				{Key: "email", Value: "james@gmail.com"},
				{Key: "password", Value: "$2a$10$storedhash"},
				{Key: "phone", Value: "91234567"},
				{Key: "address", Value: "Sentosa"},
				{Key: "role", Value: 0},
			}),
			mtest.CreateSuccessResponse(
				bson.E{Key: "n", Value: 1},
				bson.E{Key: "nModified", Value: 1},
			),
		)

		w := putProfile(profileRouter(mt.DB, userID), `{"name":"James Tan"}`)

		if w.Code != http.StatusOK {
			mt.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
		}
		body := w.Body.String()
		if !strings.Contains(body, "James Tan") {
			mt.Errorf("expected the overridden name in the body, got %s", body)
		}
		if !strings.Contains(body, "91234567") {
			mt.Errorf("expected the retained phone in the body, got %s", body)
		}
	})
}

func TestUpdateProfileRejectsShortPassword(t *testing.T) {
	// rejected before any store access, so a nil handle is safe
	w := putProfile(profileRouter(nil, primitive.NewObjectID()), `{"name":"James Tan","password":"12345"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Password is required and 6 character long") {
		t.Fatalf("expected the whole update to be rejected, got %s", w.Body.String())
	}
}
