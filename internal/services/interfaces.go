package services

import (
	"context"

	"github.com/koordynuj/koordynuj-api/internal/models"
	"github.com/koordynuj/koordynuj-api/pkg/resend"
	"github.com/koordynuj/koordynuj-api/pkg/strapi"
)

// EmailSender delivers a notification email (implemented by pkg/resend)
type EmailSender interface {
	Send(msg *resend.Message) error
}

// ContactWriter persists a contact submission to the CMS (implemented by pkg/strapi)
type ContactWriter interface {
	CreateContact(ctx context.Context, record *strapi.ContactRecord) error
}

// BuildTrigger fires a static-site rebuild (implemented by pkg/buildhook)
type BuildTrigger interface {
	Fire(ctx context.Context) error
}

// ContactServiceInterface defines the contact submission pipeline
type ContactServiceInterface interface {
	Submit(ctx context.Context, req *models.ContactRequest, meta models.RequestMeta) (*models.ContactResponse, error)
}

// RebuildServiceInterface defines the webhook rebuild dispatcher
type RebuildServiceInterface interface {
	HandleEvent(ctx context.Context, event *models.WebhookEvent) (*models.WebhookResponse, error)
}
