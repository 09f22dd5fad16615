package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swifttransit/booking-api/internal/models"
	"go.mongodb.org/mongo-driver/mongo"
)

func testUserCollection(t *testing.T) (*MongoUserCollection, *mongo.Client) {
	t.Helper()
	client, err := ConnectMongo()
	if err != nil {
		t.Skipf("failed to connect: %v, skipping integration test", err)
	}

	collection := client.Database("test_transit").Collection("users")
	collection.Drop(context.Background())

	return &MongoUserCollection{Collection: collection}, client
}

func TestMongoUserCollection_InsertAndFindByPhone(t *testing.T) {
	users, client := testUserCollection(t)
	defer client.Disconnect(context.Background())

	user := models.User{
		Phone:        "9990001111",
		Name:         "Asha Rao",
		PasswordHash: "hashedpassword",
		Role:         models.RoleCustomer,
		IsActive:     true,
	}

	err := users.InsertUser(context.Background(), user)
	assert.NoError(t, err)

	found, err := users.FindUserByPhone(context.Background(), "9990001111")
	assert.NoError(t, err)
	assert.Equal(t, user.Phone, found.Phone)
	assert.Equal(t, user.Name, found.Name)
	assert.Equal(t, user.Role, found.Role)
	assert.True(t, found.IsActive)
	assert.NotZero(t, found.CreatedAt)

	_, err = users.FindUserByPhone(context.Background(), "0000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMongoUserCollection_FindUserByID(t *testing.T) {
	users, client := testUserCollection(t)
	defer client.Disconnect(context.Background())

	user := models.User{
		Phone:        "9990001111",
		Name:         "Asha Rao",
		PasswordHash: "hashedpassword",
		Role:         models.RoleDriver,
		IsActive:     true,
	}

	err := users.InsertUser(context.Background(), user)
	require.NoError(t, err)

	inserted, err := users.FindUserByPhone(context.Background(), "9990001111")
	require.NoError(t, err)

	found, err := users.FindUserByID(context.Background(), inserted.ID.Hex())
	assert.NoError(t, err)
	assert.Equal(t, user.Phone, found.Phone)

	// Invalid hex id
	_, err = users.FindUserByID(context.Background(), "invalid-id")
	assert.Error(t, err)
}

func TestMongoUserCollection_SetActive(t *testing.T) {
	users, client := testUserCollection(t)
	defer client.Disconnect(context.Background())

	user := models.User{
		Phone:    "9990001111",
		Name:     "Asha Rao",
		Role:     models.RoleCustomer,
		IsActive: true,
	}
	require.NoError(t, users.InsertUser(context.Background(), user))

	inserted, err := users.FindUserByPhone(context.Background(), "9990001111")
	require.NoError(t, err)

	err = users.SetActive(context.Background(), inserted.ID.Hex(), false)
	assert.NoError(t, err)

	found, err := users.FindUserByID(context.Background(), inserted.ID.Hex())
	require.NoError(t, err)
	assert.False(t, found.IsActive)

	// Toggling back restores the original value
	err = users.SetActive(context.Background(), inserted.ID.Hex(), true)
	assert.NoError(t, err)

	found, err = users.FindUserByID(context.Background(), inserted.ID.Hex())
	require.NoError(t, err)
	assert.True(t, found.IsActive)
}

func TestMongoUserCollection_ListUsers(t *testing.T) {
	users, client := testUserCollection(t)
	defer client.Disconnect(context.Background())

	for i := 0; i < 30; i++ {
		role := models.RoleCustomer
		if i%10 == 0 {
			role = models.RoleDriver
		}
		user := models.User{
			Phone:    fmt.Sprintf("99900011%02d", i),
			Name:     fmt.Sprintf("Customer %02d", i),
			Role:     role,
			IsActive: true,
		}
		require.NoError(t, users.InsertUser(context.Background(), user))
	}

	t.Run("pagination", func(t *testing.T) {
		page, err := users.ListUsers(context.Background(), 1, 25, "", "")
		require.NoError(t, err)
		assert.Len(t, page.Users, 25)
		assert.Equal(t, int64(2), page.TotalPages)
		assert.Equal(t, int64(1), page.Page)

		page, err = users.ListUsers(context.Background(), 2, 25, "", "")
		require.NoError(t, err)
		assert.Len(t, page.Users, 5)
	})

	t.Run("case-insensitive search on name or phone", func(t *testing.T) {
		page, err := users.ListUsers(context.Background(), 1, 25, "CUSTOMER 05", "")
		require.NoError(t, err)
		assert.Len(t, page.Users, 1)
		assert.Equal(t, "Customer 05", page.Users[0].Name)

		page, err = users.ListUsers(context.Background(), 1, 25, "9990001107", "")
		require.NoError(t, err)
		assert.Len(t, page.Users, 1)
		assert.Equal(t, "9990001107", page.Users[0].Phone)
	})

	t.Run("role filter", func(t *testing.T) {
		page, err := users.ListUsers(context.Background(), 1, 25, "", models.RoleDriver)
		require.NoError(t, err)
		assert.Len(t, page.Users, 3)
		for _, u := range page.Users {
			assert.Equal(t, models.RoleDriver, u.Role)
		}
	})
}
