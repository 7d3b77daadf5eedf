package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/Skotchmaster/nk_store/internal/models"
	"github.com/Skotchmaster/nk_store/internal/repo"
)

const maxInquiryLength = 5000

type InquiryService struct {
	Repo *repo.GormRepo
}

type InquiryInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Submit stores a contact-form message as unread.
func (s *InquiryService) Submit(ctx context.Context, in InquiryInput) (*models.Inquiry, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("name required: %w", ErrValidation)
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(in.Email))
	if err != nil {
		return nil, fmt.Errorf("email %q: %w", in.Email, ErrValidation)
	}
	msg := strings.TrimSpace(in.Message)
	if msg == "" {
		return nil, fmt.Errorf("message required: %w", ErrValidation)
	}
	if len(msg) > maxInquiryLength {
		return nil, fmt.Errorf("message longer than %d bytes: %w", maxInquiryLength, ErrValidation)
	}

	iq := &models.Inquiry{
		Name:    name,
		Email:   strings.ToLower(addr.Address),
		Subject: strings.TrimSpace(in.Subject),
		Message: msg,
		Status:  models.InquiryUnread,
	}
	if err := s.Repo.CreateInquiry(ctx, iq); err != nil {
		return nil, err
	}
	return iq, nil
}

type InquiryPage struct {
	Total  int64            `json:"total"`
	Unread int64            `json:"unread"`
	Items  []models.Inquiry `json:"data"`
}

func (s *InquiryService) List(ctx context.Context, offset, limit int) (*InquiryPage, error) {
	total, items, err := s.Repo.ListInquiries(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	unread, err := s.Repo.CountUnreadInquiries(ctx)
	if err != nil {
		return nil, err
	}
	return &InquiryPage{Total: total, Unread: unread, Items: items}, nil
}

func (s *InquiryService) MarkRead(ctx context.Context, id string) error {
	if err := s.Repo.SetInquiryStatus(ctx, id, models.InquiryRead); err != nil {
		return notFound(err, "inquiry %s", id)
	}
	return nil
}

func (s *InquiryService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.DeleteInquiry(ctx, id); err != nil {
		return notFound(err, "inquiry %s", id)
	}
	return nil
}
