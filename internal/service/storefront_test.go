package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/nk_store/internal/models"
)

func TestCategories(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newEnv(t)
	svc := &CategoryService{Repo: e.repo}

	c, err := svc.Create(ctx, "  Cold   Pressed Oils ")
	require.NoError(t, err)
	assert.Equal(t, "cold_pressed_oils", c.Slug)
	assert.Equal(t, "Cold Pressed Oils", c.Name)
	assert.True(t, c.IsActive)

	_, err = svc.Create(ctx, "cold pressed oils")
	assert.ErrorIs(t, err, ErrConflict)
	_, err = svc.Create(ctx, "   ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, "Atta")
	require.NoError(t, err)
	require.NoError(t, svc.SetActive(ctx, "cold_pressed_oils", false))

	active, err := svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "atta", active[0].Slug)

	all, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assert.ErrorIs(t, svc.SetActive(ctx, "ghee", true), ErrNotFound)
	require.NoError(t, svc.Delete(ctx, "atta"))
	assert.ErrorIs(t, svc.Delete(ctx, "atta"), ErrNotFound)
}

func TestReviews_RatingKeptOnProduct(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newEnv(t)
	svc := &ReviewService{Repo: e.repo}
	p := e.product(t, riceWithSizes())
	asha := &models.User{ID: "u1", DisplayName: "Asha"}
	ravi := &models.User{ID: "u2"}

	first, err := svc.Add(ctx, asha, p.ID, 5, " lovely ")
	require.NoError(t, err)
	assert.Equal(t, "lovely", first.Comment)
	assert.Equal(t, "Asha", first.UserName)

	second, err := svc.Add(ctx, ravi, p.ID, 4, "ok")
	require.NoError(t, err)
	assert.Equal(t, "User", second.UserName)

	_, err = svc.Add(ctx, ravi, p.ID, 4, "ok")
	require.NoError(t, err)

	got := e.reload(t, p.ID)
	assert.EqualValues(t, 3, got.ReviewCount)
	assert.InDelta(t, 4.3, got.AverageRating, 0.001)
	// Stock is untouched by the rating write.
	assert.EqualValues(t, 10, got.Variants[0].Stock)
	assert.EqualValues(t, 5, got.Variants[1].Stock)

	_, err = svc.Edit(ctx, first.ID, ravi.ID, 1, "changed")
	assert.ErrorIs(t, err, ErrForbidden)
	edited, err := svc.Edit(ctx, first.ID, asha.ID, 2, "changed")
	require.NoError(t, err)
	assert.True(t, edited.Edited)
	assert.InDelta(t, 3.3, e.reload(t, p.ID).AverageRating, 0.001)

	assert.ErrorIs(t, svc.Delete(ctx, first.ID, ravi.ID, models.RoleUser), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, first.ID, "boss", models.RoleAdmin))
	require.NoError(t, svc.Delete(ctx, second.ID, ravi.ID, models.RoleUser))
	assert.ErrorIs(t, svc.Delete(ctx, second.ID, ravi.ID, models.RoleUser), ErrNotFound)

	got = e.reload(t, p.ID)
	assert.EqualValues(t, 1, got.ReviewCount)
	assert.InDelta(t, 4.0, got.AverageRating, 0.001)

	total, items, err := svc.List(ctx, p.ID, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, items, 1)
}

func TestReviews_Rejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newEnv(t)
	svc := &ReviewService{Repo: e.repo}
	p := e.product(t, riceWithSizes())
	u := &models.User{ID: "u1"}

	for _, rating := range []int64{0, 6, -1} {
		_, err := svc.Add(ctx, u, p.ID, rating, "fine")
		assert.ErrorIs(t, err, ErrValidation, "rating %d", rating)
	}
	_, err := svc.Add(ctx, u, p.ID, 3, "  ")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Add(ctx, u, "missing", 3, "fine")
	assert.ErrorIs(t, err, ErrNotFound)
	_, _, err = svc.List(ctx, "missing", 0, 10)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.EqualValues(t, 0, e.reload(t, p.ID).ReviewCount)
}

func TestInquiries(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newEnv(t)
	svc := &InquiryService{Repo: e.repo}

	iq, err := svc.Submit(ctx, InquiryInput{Name: "Meena", Email: " Meena@Example.com ", Subject: "Bulk", Message: "50kg?"})
	require.NoError(t, err)
	assert.Equal(t, "meena@example.com", iq.Email)
	assert.Equal(t, models.InquiryUnread, iq.Status)

	_, err = svc.Submit(ctx, InquiryInput{Name: "Ravi", Email: "ravi@example.com", Message: "hello"})
	require.NoError(t, err)

	bad := []InquiryInput{
		{Email: "a@b.in", Message: "x"},
		{Name: "A", Email: "nope", Message: "x"},
		{Name: "A", Email: "a@b.in", Message: "   "},
	}
	for _, in := range bad {
		_, err := svc.Submit(ctx, in)
		assert.ErrorIs(t, err, ErrValidation)
	}

	require.NoError(t, svc.MarkRead(ctx, iq.ID))
	page, err := svc.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	assert.EqualValues(t, 1, page.Unread)
	assert.Len(t, page.Items, 2)

	assert.ErrorIs(t, svc.MarkRead(ctx, "missing"), ErrNotFound)
	require.NoError(t, svc.Delete(ctx, iq.ID))
	assert.ErrorIs(t, svc.Delete(ctx, iq.ID), ErrNotFound)
}

func TestWishlistToggle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	e := newEnv(t)
	svc := &WishlistService{Repo: e.repo}
	p := e.product(t, riceWithSizes())

	saved, err := svc.Toggle(ctx, "u1", p.ID)
	require.NoError(t, err)
	assert.True(t, saved)

	items, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, p.ID, items[0].ProductID)
	// Cheapest effective variant is the 500g pack.
	assert.EqualValues(t, 60, items[0].Price)

	saved, err = svc.Toggle(ctx, "u1", p.ID)
	require.NoError(t, err)
	assert.False(t, saved)
	items, err = svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = svc.Toggle(ctx, "u1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Toggle(ctx, "", p.ID)
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, svc.Remove(ctx, "u1", p.ID), ErrNotFound)
}
