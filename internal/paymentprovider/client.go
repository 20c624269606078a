// Package paymentprovider реализует клиент внешнего платёжного провайдера.
//
// Реальная интеграция не входит в объём системы: при отсутствии учётных
// данных клиент работает в sandbox-режиме и выдаёт локальные идентификаторы
// заказов, воспроизводя контракт провайдера.
package paymentprovider

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Client — HTTP клиент платёжного провайдера.
type Client struct {
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент провайдера.
func NewClient(apiURL string) *Client {
	return &Client{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) newRequest(creds Credentials, method, path string, body interface{}) (*http.Request, error) {
	url := c.apiURL + path
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		return nil, err
	}
	auth := base64.StdEncoding.EncodeToString([]byte(creds.ClientID + ":" + creds.ClientSecret))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// CreateOrder отправляет запрос на создание заказа. В sandbox-режиме
// заказ не покидает процесс: возвращается локально сгенерированный
// идентификатор со статусом CREATED.
func (c *Client) CreateOrder(creds Credentials, reqParams CreateOrderRequest) (*CreateOrderResponse, error) {
	if !creds.Configured() {
		return &CreateOrderResponse{
			OrderID: "SANDBOX-" + uuid.NewString(),
			Status:  OrderStatusCreated,
		}, nil
	}

	req, err := c.newRequest(creds, "POST", "/v2/checkout/orders", reqParams)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, errors.New("unexpected status: " + resp.Status)
	}

	var orderResp CreateOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&orderResp); err != nil {
		return nil, err
	}
	return &orderResp, nil
}

// CaptureOrder подтверждает заказ у провайдера. В sandbox-режиме
// подтверждение всегда успешно.
func (c *Client) CaptureOrder(creds Credentials, orderRef string) (*CaptureOrderResponse, error) {
	if !creds.Configured() {
		return &CaptureOrderResponse{
			OrderID: orderRef,
			Status:  OrderStatusCompleted,
		}, nil
	}

	req, err := c.newRequest(creds, "POST", "/v2/checkout/orders/"+orderRef+"/capture", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, errors.New("unexpected status: " + resp.Status)
	}

	var captureResp CaptureOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&captureResp); err != nil {
		return nil, err
	}
	return &captureResp, nil
}
