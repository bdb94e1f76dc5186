package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/booth-service/application"
	"github.com/Masterbarreto/Api-Urna/contexts/election-operations/booth-service/domain/entities"
	httptransport "github.com/Masterbarreto/Api-Urna/contexts/election-operations/booth-service/transport/http"
)

type Handler struct {
	Booths application.Service
	Logger *slog.Logger
}

// CreateBoothHandler godoc
// @Summary Register an urna
// @Tags urnas
// @Accept json
// @Produce json
// @Param request body http.BoothRequest true "booth"
// @Success 201 {object} http.BoothResponse
// @Failure 400 {object} http.ErrorResponse
// @Failure 409 {object} http.ErrorResponse
// @Router /api/v1/urnas [post]
func (h Handler) CreateBoothHandler(
	ctx context.Context,
	req httptransport.BoothRequest,
) (httptransport.BoothResponse, error) {
	booth, err := h.Booths.CreateBooth(ctx, application.CreateBoothCommand{
		Number:     req.Numero,
		Location:   req.Localizacao,
		IPAddress:  req.IPAddress,
		ElectionID: req.EleicaoID,
	})
	if err != nil {
		return httptransport.BoothResponse{}, err
	}
	return boothResponse(booth), nil
}

// UpdateBoothHandler godoc
// @Summary Update an urna
// @Tags urnas
// @Accept json
// @Produce json
// @Param id path string true "booth id"
// @Param request body http.BoothRequest true "booth"
// @Success 200 {object} http.BoothResponse
// @Failure 400 {object} http.ErrorResponse
// @Failure 404 {object} http.ErrorResponse
// @Router /api/v1/urnas/{id} [put]
func (h Handler) UpdateBoothHandler(
	ctx context.Context,
	boothID string,
	req httptransport.BoothRequest,
) (httptransport.BoothResponse, error) {
	cmd := application.UpdateBoothCommand{BoothID: boothID}
	if req.Localizacao != "" {
		cmd.Location = &req.Localizacao
	}
	if req.Status != nil {
		status := entities.BoothStatus(*req.Status)
		cmd.Status = &status
	}
	if req.IPAddress != "" {
		cmd.IPAddress = &req.IPAddress
	}
	if req.EleicaoID != "" {
		cmd.ElectionID = &req.EleicaoID
	}
	booth, err := h.Booths.UpdateBooth(ctx, cmd)
	if err != nil {
		return httptransport.BoothResponse{}, err
	}
	return boothResponse(booth), nil
}

// GetBoothHandler godoc
// @Summary Get an urna by id
// @Tags urnas
// @Produce json
// @Param id path string true "booth id"
// @Success 200 {object} http.BoothResponse
// @Failure 404 {object} http.ErrorResponse
// @Router /api/v1/urnas/{id} [get]
func (h Handler) GetBoothHandler(ctx context.Context, boothID string) (httptransport.BoothResponse, error) {
	booth, err := h.Booths.GetBooth(ctx, boothID)
	if err != nil {
		return httptransport.BoothResponse{}, err
	}
	return boothResponse(booth), nil
}

// ListBoothsHandler godoc
// @Summary List the urna fleet with derived connection state
// @Tags urnas
// @Produce json
// @Success 200 {object} http.BoothListResponse
// @Router /api/v1/urnas [get]
func (h Handler) ListBoothsHandler(ctx context.Context) (httptransport.BoothListResponse, error) {
	booths, err := h.Booths.ListBooths(ctx)
	if err != nil {
		return httptransport.BoothListResponse{}, err
	}
	resp := httptransport.BoothListResponse{Items: make([]httptransport.BoothResponse, 0, len(booths))}
	for _, booth := range booths {
		resp.Items = append(resp.Items, boothResponse(booth))
	}
	return resp, nil
}

// DeleteBoothHandler godoc
// @Summary Delete an urna
// @Tags urnas
// @Param id path string true "booth id"
// @Success 204
// @Failure 404 {object} http.ErrorResponse
// @Router /api/v1/urnas/{id} [delete]
func (h Handler) DeleteBoothHandler(ctx context.Context, boothID string) error {
	return h.Booths.DeleteBooth(ctx, boothID)
}

// PingHandler godoc
// @Summary Record an urna heartbeat
// @Tags urnas
// @Produce json
// @Param numero path int true "booth number"
// @Success 200 {object} http.PingResponse
// @Failure 404 {object} http.ErrorResponse
// @Router /api/v1/urnas/{numero}/ping [post]
func (h Handler) PingHandler(ctx context.Context, number int, ip string) (httptransport.PingResponse, error) {
	booth, err := h.Booths.Ping(ctx, number, ip)
	if err != nil {
		return httptransport.PingResponse{}, err
	}
	resp := httptransport.PingResponse{
		Numero:        booth.Number,
		ConexaoStatus: string(booth.Connection),
	}
	if booth.LastPing != nil {
		resp.UltimoPing = booth.LastPing.Format(time.RFC3339)
	}
	return resp, nil
}

func boothResponse(b entities.Booth) httptransport.BoothResponse {
	resp := httptransport.BoothResponse{
		ID:            b.ID,
		Numero:        b.Number,
		Localizacao:   b.Location,
		Status:        string(b.Status),
		IPAddress:     b.IPAddress,
		EleicaoID:     b.ElectionID,
		ConexaoStatus: string(b.Connection),
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     b.UpdatedAt.Format(time.RFC3339),
	}
	if b.LastPing != nil {
		ping := b.LastPing.Format(time.RFC3339)
		resp.UltimoPing = &ping
	}
	return resp
}
