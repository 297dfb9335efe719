package payment_gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/services/shared/metrics"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/dto/requests"
	"telehealth-service/internal/pkg/dto/responses"
	"telehealth-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	gatewayName = "paystack"

	paystackInitializePath = "/transaction/initialize"
	paystackVerifyPathFmt  = "/transaction/verify/%s"

	operationInitialize = "initialize"
	operationVerify     = "verify"
)

type paystackEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type paystackInitializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type paystackVerifyData struct {
	ID        int64  `json:"id"`
	Status    string `json:"status"`
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
}

type paystackService struct {
	Client    *http.Client
	Log       *zap.Logger
	Metrics   *metrics.Metrics
	baseURL   string
	secretKey string
}

func NewPaystackService(internalConfig *config.InternalConfig, logger *zap.Logger, m *metrics.Metrics) contracts.PaymentGatewayService {
	timeout := internalConfig.PaymentGateway.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &paystackService{
		Client:    &http.Client{Timeout: timeout},
		Log:       logger,
		Metrics:   m,
		baseURL:   strings.TrimRight(internalConfig.PaymentGateway.BaseUrl, "/"),
		secretKey: internalConfig.PaymentGateway.SecretKey,
	}
}

func (s *paystackService) InitializeTransaction(ctx context.Context, request *requests.GatewayInitialize) (*responses.GatewayInitialize, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("paystackService.InitializeTransaction called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentRefKey, request.Reference),
	)

	body, err := json.Marshal(request)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	var data paystackInitializeData
	if err := s.do(ctx, operationInitialize, http.MethodPost, paystackInitializePath, body, &data); err != nil {
		return nil, err
	}

	reference := data.Reference
	if reference == "" {
		reference = request.Reference
	}
	return &responses.GatewayInitialize{
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
		Reference:        reference,
	}, nil
}

func (s *paystackService) VerifyTransaction(ctx context.Context, reference string) (*responses.GatewayVerify, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("paystackService.VerifyTransaction called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentRefKey, reference),
	)

	var data paystackVerifyData
	path := fmt.Sprintf(paystackVerifyPathFmt, url.PathEscape(reference))
	if err := s.do(ctx, operationVerify, http.MethodGet, path, nil, &data); err != nil {
		return nil, err
	}

	gatewayID := ""
	if data.ID != 0 {
		gatewayID = strconv.FormatInt(data.ID, 10)
	}
	return &responses.GatewayVerify{
		Status:    data.Status,
		Reference: data.Reference,
		GatewayID: gatewayID,
		Amount:    data.Amount,
		Currency:  data.Currency,
	}, nil
}

// do sends the request and decodes the envelope data into out. Non-2xx
// responses and envelopes with status=false are errors.
func (s *paystackService) do(ctx context.Context, operation, method, path string, body []byte, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAuthorization, "Bearer "+s.secretKey)
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)

	start := time.Now()
	resp, err := s.Client.Do(req)
	if err != nil {
		s.Metrics.ObserveGatewayCall(operation, 0, time.Since(start).Seconds())
		return exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()
	s.Metrics.ObserveGatewayCall(operation, resp.StatusCode, time.Since(start).Seconds())

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return exceptions.ErrDecodeResponse(err, gatewayName)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		s.Log.Error("paystackService.do unexpected status",
			zap.String(constvars.LoggingOperationKey, operation),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
		)
		return exceptions.ErrPaymentGatewayStatus(nil, gatewayName, resp.StatusCode, string(raw))
	}

	var envelope paystackEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return exceptions.ErrDecodeResponse(err, gatewayName)
	}
	if !envelope.Status {
		return exceptions.ErrPaymentGatewayRejected(nil, gatewayName, envelope.Message)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return exceptions.ErrDecodeResponse(err, gatewayName)
	}
	return nil
}
