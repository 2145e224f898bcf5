package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/models"
	"storefront/pkg/logger"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Answer   string `json:"answer"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email       string `json:"email"`
	Answer      string `json:"answer"`
	NewPassword string `json:"newPassword"`
}

type profileRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// Register creates a new customer account. Validation order is fixed and
// only the first failure is reported; a duplicate email is a success-shaped
// conflict, not an error.
func Register(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid body"})
			return
		}

		if msg := validateRegistration(RegisterInput(req)); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": msg})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		count, err := db.Collection("users").CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			respondServerError(c, "Error in Registration", err)
			return
		}
		if count > 0 {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Already Registered, please login"})
			return
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			// a failed hash must never update or create a credential
			respondServerError(c, "Error in Registration", err)
			return
		}

		now := time.Now()
		user := models.User{
			Name:      strings.TrimSpace(req.Name),
			Email:     email,
			Password:  hash,
			Phone:     strings.TrimSpace(req.Phone),
			Address:   strings.TrimSpace(req.Address),
			Answer:    strings.TrimSpace(req.Answer),
			Role:      models.RoleCustomer,
			CreatedAt: now,
			UpdatedAt: now,
		}

		res, err := db.Collection("users").InsertOne(ctx, user)
		if err != nil {
			respondServerError(c, "Error in Registration", err)
			return
		}
		user.ID = res.InsertedID.(primitive.ObjectID)

		logger.Get().Info().Str("email", email).Msg("user registered")
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "User Registered Successfully",
			"user":    user,
		})
	}
}

// Login verifies credentials and issues a signed session token.
func Login(db *mongo.Database, jwtSecret string, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid body"})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" || strings.TrimSpace(req.Password) == "" {
			// no lookup is performed for an empty field
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Invalid email or password"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		err := db.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Email is not registered"})
			return
		}
		if err != nil {
			respondServerError(c, "Error in login", err)
			return
		}

		if !checkPassword(req.Password, user.Password) {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "Invalid Password"})
			return
		}

		token, err := issueToken(user.ID, jwtSecret, tokenTTL)
		if err != nil {
			respondServerError(c, "Error in login", err)
			return
		}

		logger.Get().Info().Str("email", email).Msg("user login succeeded")
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "login successfully",
			"user": gin.H{
				"_id":     user.ID.Hex(),
				"name":    user.Name,
				"email":   user.Email,
				"phone":   user.Phone,
				"address": user.Address,
				"role":    user.Role,
			},
			"token": token,
		})
	}
}

// ForgotPassword resets a password when email and challenge answer match the
// same user. Which of the two mismatched is never revealed.
func ForgotPassword(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req forgotPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid body"})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		answer := strings.TrimSpace(req.Answer)
		newPassword := strings.TrimSpace(req.NewPassword)
		switch {
		case email == "":
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email is required"})
			return
		case answer == "":
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Answer is required"})
			return
		case newPassword == "":
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "New Password is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		err := db.Collection("users").FindOne(ctx, bson.M{"email": email, "answer": answer}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Wrong Email Or Answer"})
			return
		}
		if err != nil {
			respondServerError(c, "Something went wrong", err)
			return
		}

		hash, err := hashPassword(newPassword)
		if err != nil {
			respondServerError(c, "Something went wrong", err)
			return
		}

		_, err = db.Collection("users").UpdateByID(ctx, user.ID, bson.M{
			"$set": bson.M{"password": hash, "updatedAt": time.Now()},
		})
		if err != nil {
			respondServerError(c, "Something went wrong", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password Reset Successfully"})
	}
}

// UpdateProfile applies a sparse patch over the caller's profile. A supplied
// password shorter than six characters rejects the whole update.
func UpdateProfile(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDValue, ok := c.Get("userId")
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
			return
		}
		userID := userIDValue.(primitive.ObjectID)

		var req profileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid body"})
			return
		}

		password := strings.TrimSpace(req.Password)
		if password != "" && len(password) < minPasswordLength {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Password is required and 6 character long"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "user not found"})
			return
		}
		if err != nil {
			respondServerError(c, "Error While Update profile", err)
			return
		}

		hashed := ""
		if password != "" {
			hashed, err = hashPassword(password)
			if err != nil {
				respondServerError(c, "Error While Update profile", err)
				return
			}
		}

		merged := mergeProfile(user, ProfilePatch{
			Name:           req.Name,
			Phone:          req.Phone,
			Address:        req.Address,
			HashedPassword: hashed,
		})
		merged.UpdatedAt = time.Now()

		_, err = db.Collection("users").UpdateByID(ctx, userID, bson.M{
			"$set": bson.M{
				"name":      merged.Name,
				"password":  merged.Password,
				"phone":     merged.Phone,
				"address":   merged.Address,
				"updatedAt": merged.UpdatedAt,
			},
		})
		if err != nil {
			respondServerError(c, "Error While Update profile", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"message":     "Profile Updated Successfully",
			"updatedUser": merged,
		})
	}
}

// AuthCheck answers the protected-route ping used by the client router.
func AuthCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func issueToken(userID primitive.ObjectID, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID.Hex(),
		"exp":    time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
