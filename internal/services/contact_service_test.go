package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/koordynuj/koordynuj-api/config"
	"github.com/koordynuj/koordynuj-api/internal/models"
	"github.com/koordynuj/koordynuj-api/internal/services"
	"github.com/koordynuj/koordynuj-api/pkg/apperrors"
	"github.com/koordynuj/koordynuj-api/pkg/resend"
	"github.com/koordynuj/koordynuj-api/pkg/strapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testConfig() *config.Config {
	return &config.Config{
		Contact: config.ContactConfig{
			FromAddress:  "Formularz WWW <formularz@koordynuj-zdrowie.pl>",
			ToAddress:    "kontakt@koordynuj-zdrowie.pl",
			PersistPhone: true,
		},
	}
}

func validRequest() *models.ContactRequest {
	return &models.ContactRequest{
		Name:      "Jan",
		Email:     "jan@x.pl",
		Phone:     "123",
		Message:   "Hi",
		ElapsedMS: 5000,
	}
}

func testMeta() models.RequestMeta {
	return models.RequestMeta{IPAddress: "10.0.0.1", UserAgent: "test-agent"}
}

func TestContactService_Submit_Success(t *testing.T) {
	sender := new(MockEmailSender)
	writer := new(MockContactWriter)
	service := services.NewContactService(sender, writer, testConfig())

	sender.On("Send", mock.MatchedBy(func(msg *resend.Message) bool {
		return msg.ReplyTo == "jan@x.pl" &&
			len(msg.To) == 1 && msg.To[0] == "kontakt@koordynuj-zdrowie.pl" &&
			msg.Subject == "Nowa wiadomość od Jan"
	})).Return(nil).Once()
	writer.On("CreateContact", mock.Anything, mock.MatchedBy(func(r *strapi.ContactRecord) bool {
		return r.ImieNazwisko == "Jan" && r.Email == "jan@x.pl" &&
			r.Telefon == "123" && r.Wiadomosc == "Hi" &&
			r.StatusWiadomosci == "nowa" &&
			r.IPAddress == "10.0.0.1" && r.UserAgent == "test-agent"
	})).Return(nil).Once()

	resp, err := service.Submit(context.Background(), validRequest(), testMeta())

	assert.NoError(t, err)
	assert.Equal(t, "Wiadomość wysłana pomyślnie!", resp.Message)

	sender.AssertExpectations(t)
	writer.AssertExpectations(t)
}

func TestContactService_Submit_HoneypotRejected(t *testing.T) {
	sender := new(MockEmailSender)
	writer := new(MockContactWriter)
	service := services.NewContactService(sender, writer, testConfig())

	req := validRequest()
	req.Honeypot = "gotcha"

	resp, err := service.Submit(context.Background(), req, testMeta())

	assert.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	assert.Equal(t, "Błąd weryfikacji anty-spam.", resp.Message)

	sender.AssertNotCalled(t, "Send")
	writer.AssertNotCalled(t, "CreateContact")
}

func TestContactService_Submit_TooFastRejected(t *testing.T) {
	sender := new(MockEmailSender)
	writer := new(MockContactWriter)
	service := services.NewContactService(sender, writer, testConfig())

	req := validRequest()
	req.ElapsedMS = 2999

	resp, err := service.Submit(context.Background(), req, testMeta())

	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	assert.Equal(t, "Formularz wypełniono zbyt szybko.", resp.Message)

	sender.AssertNotCalled(t, "Send")
	writer.AssertNotCalled(t, "CreateContact")
}

func TestContactService_Submit_MissingFields(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*models.ContactRequest)
	}{
		{"missing_name", func(r *models.ContactRequest) { r.Name = "" }},
		{"missing_email", func(r *models.ContactRequest) { r.Email = "" }},
		{"missing_phone", func(r *models.ContactRequest) { r.Phone = "" }},
		{"missing_message", func(r *models.ContactRequest) { r.Message = "" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sender := new(MockEmailSender)
			writer := new(MockContactWriter)
			service := services.NewContactService(sender, writer, testConfig())

			req := validRequest()
			tc.mutate(req)

			resp, err := service.Submit(context.Background(), req, testMeta())

			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
			assert.Equal(t, "Proszę wypełnić wszystkie wymagane pola.", resp.Message)

			sender.AssertNotCalled(t, "Send")
			writer.AssertNotCalled(t, "CreateContact")
		})
	}
}

func TestContactService_Submit_EmailFailureIsFatal(t *testing.T) {
	sender := new(MockEmailSender)
	writer := new(MockContactWriter)
	service := services.NewContactService(sender, writer, testConfig())

	sender.On("Send", mock.Anything).Return(errors.New("resend unavailable")).Once()

	resp, err := service.Submit(context.Background(), validRequest(), testMeta())

	assert.True(t, apperrors.Is(err, apperrors.ErrUpstream))
	assert.Equal(t, "Wystąpił błąd po stronie serwera.", resp.Message)
	assert.Contains(t, resp.Error, "resend unavailable")

	// Persist must be skipped entirely when the notification failed
	writer.AssertNotCalled(t, "CreateContact")
	sender.AssertExpectations(t)
}

func TestContactService_Submit_PersistFailureStillSucceeds(t *testing.T) {
	sender := new(MockEmailSender)
	writer := new(MockContactWriter)
	service := services.NewContactService(sender, writer, testConfig())

	sender.On("Send", mock.Anything).Return(nil).Once()
	writer.On("CreateContact", mock.Anything, mock.Anything).Return(errors.New("strapi down")).Once()

	resp, err := service.Submit(context.Background(), validRequest(), testMeta())

	// The team already got the email, so the caller sees success
	assert.NoError(t, err)
	assert.Equal(t, "Wiadomość wysłana pomyślnie!", resp.Message)

	sender.AssertExpectations(t)
	writer.AssertExpectations(t)
}

func TestContactService_Submit_PhoneNotPersistedWhenDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Contact.PersistPhone = false

	sender := new(MockEmailSender)
	writer := new(MockContactWriter)
	service := services.NewContactService(sender, writer, cfg)

	sender.On("Send", mock.Anything).Return(nil).Once()
	writer.On("CreateContact", mock.Anything, mock.MatchedBy(func(r *strapi.ContactRecord) bool {
		return r.Telefon == ""
	})).Return(nil).Once()

	_, err := service.Submit(context.Background(), validRequest(), testMeta())

	assert.NoError(t, err)
	writer.AssertExpectations(t)
}

func TestContactService_Submit_EmailEscapesUserContent(t *testing.T) {
	sender := new(MockEmailSender)
	writer := new(MockContactWriter)
	service := services.NewContactService(sender, writer, testConfig())

	req := validRequest()
	req.Name = "<script>alert(1)</script>"
	req.Message = "line one\nline two"

	var sent *resend.Message
	sender.On("Send", mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(0).(*resend.Message)
	}).Return(nil).Once()
	writer.On("CreateContact", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := service.Submit(context.Background(), req, testMeta())

	assert.NoError(t, err)
	assert.NotContains(t, sent.HTML, "<script>")
	assert.Contains(t, sent.HTML, "&lt;script&gt;")
	assert.Contains(t, sent.HTML, "line one<br>line two")
}
