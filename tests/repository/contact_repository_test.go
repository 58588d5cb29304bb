package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/opscorehq/opscore-api/internal/domain"
	"github.com/opscorehq/opscore-api/internal/repository"
	"github.com/opscorehq/opscore-api/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestContact(t *testing.T, db *gorm.DB, firstName, lastName, email string) *domain.Contact {
	t.Helper()

	contact := &domain.Contact{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     "12345678",
		Title:     "Manager",
	}
	require.NoError(t, db.Create(contact).Error)
	return contact
}

// =============================================================================
// CRUD Tests
// =============================================================================

func TestContactRepository_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewContactRepository(db)

	contact := &domain.Contact{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john.doe@example.com",
		Title:     "CEO",
	}

	err := repo.Create(context.Background(), contact)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, contact.ID)

	found, err := repo.GetByID(context.Background(), contact.ID)
	require.NoError(t, err)
	assert.Equal(t, "John", found.FirstName)
	assert.Equal(t, "Doe", found.LastName)
	assert.Equal(t, "john.doe@example.com", found.Email)
}

func TestContactRepository_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewContactRepository(db)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContactRepository_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewContactRepository(db)

	contact := createTestContact(t, db, "Jane", "Smith", "jane@example.com")
	contact.Title = "Director"

	require.NoError(t, repo.Update(context.Background(), contact))

	found, err := repo.GetByID(context.Background(), contact.ID)
	require.NoError(t, err)
	assert.Equal(t, "Director", found.Title)
}

// =============================================================================
// Listing and search
// =============================================================================

func TestContactRepository_List_Search(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewContactRepository(db)

	createTestContact(t, db, "Alice", "Anderson", "alice@example.com")
	createTestContact(t, db, "Bob", "Brown", "bob@example.com")
	createTestContact(t, db, "Carol", "Carter", "carol@example.com")

	params := domain.ListParams{Page: 1, PageSize: 25, Search: "ander"}
	contacts, total, err := repo.List(context.Background(), params)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Alice", contacts[0].FirstName)
}

func TestContactRepository_List_Paging(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewContactRepository(db)

	createTestContact(t, db, "Alice", "Anderson", "alice@example.com")
	createTestContact(t, db, "Bob", "Brown", "bob@example.com")
	createTestContact(t, db, "Carol", "Carter", "carol@example.com")

	params := domain.ListParams{Page: 2, PageSize: 2}
	contacts, total, err := repo.List(context.Background(), params)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, contacts, 1)
	// Ordered by last name, so page two starts at Carter
	assert.Equal(t, "Carter", contacts[0].LastName)
}

// =============================================================================
// Soft delete
// =============================================================================

func TestContactRepository_Delete_SoftDeletes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewContactRepository(db)

	contact := createTestContact(t, db, "Gone", "Soon", "gone@example.com")

	require.NoError(t, repo.Delete(context.Background(), contact.ID))

	_, err := repo.GetByID(context.Background(), contact.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// The row survives underneath the soft delete
	var count int64
	require.NoError(t, db.Unscoped().Model(&domain.Contact{}).
		Where("id = ?", contact.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestContactRepository_Delete_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewContactRepository(db)

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContactRepository_Delete_RemovesCompanyLinks(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewContactRepository(db)

	contact := createTestContact(t, db, "Linked", "Person", "linked@example.com")
	company := &domain.Company{Name: "Acme"}
	require.NoError(t, db.Create(company).Error)
	link := &domain.CompanyContact{CompanyID: company.ID, ContactID: contact.ID}
	require.NoError(t, db.Create(link).Error)

	require.NoError(t, repo.Delete(context.Background(), contact.ID))

	var links int64
	require.NoError(t, db.Model(&domain.CompanyContact{}).
		Where("contact_id = ?", contact.ID).Count(&links).Error)
	assert.EqualValues(t, 0, links)
}
