package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/impressdesigns/kassistant/pkg/fedex"
	"github.com/impressdesigns/kassistant/pkg/kerp"
	"github.com/impressdesigns/kassistant/pkg/ship_server/history"
	"github.com/impressdesigns/kassistant/pkg/ship_server/label"
	"github.com/impressdesigns/kassistant/pkg/ship_server/model"
	"github.com/impressdesigns/kassistant/pkg/ship_server/settings"
	"github.com/impressdesigns/kassistant/pkg/ship_server/storage/postgres"
	"github.com/impressdesigns/kassistant/pkg/util"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

const DefaultTimeZone = "America/Chicago"

type APIConfig struct {
	Database     util.PostgresDatabaseConfig `yaml:"database"`
	LocalAddress string                      `yaml:"local_address"`
	FedEx        fedex.Config                `yaml:"fedex"`
	KERP         kerp.Config                 `yaml:"kerp"`
	TimeZone     string                      `yaml:"time_zone"` // Decides "today" and history days. Defaults to America/Chicago.
}

type API struct {
	settingsMgr settings.SettingsManager
	labelCtrl   label.LabelController
	historyCtrl history.HistoryController
	location    *time.Location

	httpServer *http.Server
}

type Option struct {
	Value string `json:"value"`
	Name  string `json:"name"`
}

type ShippingForm struct {
	ShipDate  model.Date           `json:"ship_date"`
	LabelSize fedex.LabelStockType `json:"label_size"`
	Services  []Option             `json:"services"`
	Billing   []Option             `json:"billing"`
}

// LoadLocation resolves name, falling back to DefaultTimeZone when it is empty.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimeZone
	}
	return time.LoadLocation(name)
}

func NewAPIWithConfig(cfg APIConfig) (*API, error) {
	loc, err := LoadLocation(cfg.TimeZone)
	if err != nil {
		logrus.Errorf("failed to load time zone %q: %v", cfg.TimeZone, err)
		return nil, err
	}

	storage, err := postgres.NewStorageWithConfig(cfg.Database)
	if err != nil {
		logrus.Errorf("failed to create storage: %v", err)
		return nil, err
	}

	settingsMgr := settings.NewSettingsManager(storage)
	labelCtrl := label.NewLabelController(
		storage,
		fedex.NewClientWithConfig(cfg.FedEx),
		kerp.NewClientWithConfig(cfg.KERP),
		label.WithAccountNumber(cfg.FedEx.AccountNumber),
		label.WithLocation(loc),
	)
	historyCtrl := history.NewHistoryController(storage, history.WithLocation(loc))
	return NewAPIWithController(settingsMgr, labelCtrl, historyCtrl, loc, cfg.LocalAddress), nil
}

func NewAPIWithController(settingsMgr settings.SettingsManager, labelCtrl label.LabelController, historyCtrl history.HistoryController, loc *time.Location, localAddress string) *API {
	apiServer := &API{
		settingsMgr: settingsMgr,
		labelCtrl:   labelCtrl,
		historyCtrl: historyCtrl,
		location:    loc,
	}
	if apiServer.location == nil {
		apiServer.location = time.UTC
	}

	r := mux.NewRouter()
	r.Use(Log)
	r.HandleFunc("/health", apiServer.health).Methods(http.MethodGet)
	r.HandleFunc("/settings/setup", apiServer.getSettings).Methods(http.MethodGet)
	r.HandleFunc("/settings/setup", apiServer.saveSettings).Methods(http.MethodPost)

	shipping := r.PathPrefix("/shipping").Subrouter()
	shipping.HandleFunc("/fedex/form", apiServer.getShippingForm).Methods(http.MethodGet)
	shipping.HandleFunc("/fedex/process-cartons", apiServer.processCartons).Methods(http.MethodPost)
	shipping.HandleFunc("/history/{date}", apiServer.listHistory).Methods(http.MethodGet)
	shipping.HandleFunc("/history/{date}/excel", apiServer.exportHistory).Methods(http.MethodGet)
	shipping.HandleFunc("/shipment/{id}/fedex/create-label-request", apiServer.getLabelRequest).Methods(http.MethodGet)
	shipping.HandleFunc("/shipment/{id}/fedex/create-label-response", apiServer.getLabelResponse).Methods(http.MethodGet)
	shipping.HandleFunc("/shipment/{id}/fedex/zpl", apiServer.getLabel).Methods(http.MethodGet)
	shipping.HandleFunc("/shipment/{id}/support-data", apiServer.getSupportData).Methods(http.MethodGet)

	apiServer.httpServer = &http.Server{
		Addr:              localAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return apiServer
}

func (a *API) Run() error {
	err := a.httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *API) Close(ctx context.Context) error {
	a.httpServer.SetKeepAlivesEnabled(false)
	return a.httpServer.Shutdown(ctx)
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) getSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := a.settingsMgr.GetSettings(ctx)
	if errors.Is(err, model.ErrSettingsNotFound) {
		writeJSON(w, http.StatusOK, model.Settings{CountryCode: "US", FedExLabelSize: fedex.Stock4X6})
		return
	} else if err != nil {
		http.Error(w, err.Error(), model.ErrToHttpStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (a *API) saveSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req settings.SaveSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := a.settingsMgr.SaveSettings(ctx, time.Now().Unix(), req)
	if err != nil {
		http.Error(w, err.Error(), model.ErrToHttpStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (a *API) getShippingForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	current, err := a.settingsMgr.GetSettings(ctx)
	if errors.Is(err, model.ErrSettingsNotFound) {
		http.Redirect(w, r, "/settings/setup", http.StatusSeeOther)
		return
	} else if err != nil {
		http.Error(w, err.Error(), model.ErrToHttpStatus(err))
		return
	}

	form := ShippingForm{
		ShipDate:  model.DateIn(time.Now(), a.location),
		LabelSize: current.FedExLabelSize,
		Services: lo.Map(fedex.ServiceTypes(), func(s fedex.ServiceType, _ int) Option {
			return Option{Value: string(s), Name: s.DisplayName()}
		}),
		Billing: lo.Map(fedex.PaymentTypes(), func(p fedex.PaymentType, _ int) Option {
			return Option{Value: string(p), Name: p.DisplayName()}
		}),
	}
	writeJSON(w, http.StatusOK, form)
}

func (a *API) processCartons(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req label.RunLabelsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := a.labelCtrl.RunLabels(ctx, time.Now().Unix(), req)
	if err != nil {
		http.Error(w, err.Error(), model.ErrToHttpStatus(err))
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(result))
}

func (a *API) listHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	day, err := model.NewDateFromString(mux.Vars(r)["date"])
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid date: %s", err.Error()), http.StatusBadRequest)
		return
	}

	req := history.ListShipmentsRequest{
		Day:      day,
		Detailed: r.URL.Query().Has("detailed"),
	}
	result, err := a.historyCtrl.ListShipments(ctx, req)
	if err != nil {
		http.Error(w, err.Error(), model.ErrToHttpStatus(err))
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (a *API) exportHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	day, err := model.NewDateFromString(mux.Vars(r)["date"])
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid date: %s", err.Error()), http.StatusBadRequest)
		return
	}

	workbook, err := a.historyCtrl.ExportExcel(ctx, day)
	if err != nil {
		http.Error(w, err.Error(), model.ErrToHttpStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=shipment_history_%s.xlsx", day.String()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(workbook)
}

func (a *API) getLabelRequest(w http.ResponseWriter, r *http.Request) {
	a.writeDocument(w, r, func(shipment model.Shipment) []byte { return shipment.LabelRequest })
}

func (a *API) getLabelResponse(w http.ResponseWriter, r *http.Request) {
	a.writeDocument(w, r, func(shipment model.Shipment) []byte { return shipment.LabelResponse })
}

func (a *API) writeDocument(w http.ResponseWriter, r *http.Request, document func(model.Shipment) []byte) {
	ctx := r.Context()
	shipmentID, ok := shipmentIDFromPath(w, r)
	if !ok {
		return
	}

	shipment, err := a.historyCtrl.GetShipment(ctx, shipmentID)
	if err != nil {
		http.Error(w, err.Error(), model.ErrToHttpStatus(err))
		return
	}

	doc := document(shipment)
	if len(doc) == 0 {
		http.Error(w, fmt.Sprintf("No document stored for shipment: %s", shipmentID), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(util.PrettyJSON(doc))
}

func (a *API) getLabel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	shipmentID, ok := shipmentIDFromPath(w, r)
	if !ok {
		return
	}

	zpl, err := a.historyCtrl.DecodeLabel(ctx, shipmentID)
	if err != nil {
		http.Error(w, err.Error(), model.ErrToHttpStatus(err))
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(zpl))
}

func (a *API) getSupportData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	shipmentID, ok := shipmentIDFromPath(w, r)
	if !ok {
		return
	}

	shipment, err := a.historyCtrl.GetShipment(ctx, shipmentID)
	if err != nil {
		http.Error(w, err.Error(), model.ErrToHttpStatus(err))
		return
	}

	raw, err := json.MarshalIndent(shipment, "", "  ")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=kassistant-shipment-%s.json", shipment.ID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// shipmentIDFromPath writes 404 for ids that cannot name a ledger entry.
func shipmentIDFromPath(w http.ResponseWriter, r *http.Request) (string, bool) {
	shipmentID := mux.Vars(r)["id"]
	if !util.IsUUID(shipmentID) {
		http.Error(w, fmt.Sprintf("Shipment not found: %s", shipmentID), http.StatusNotFound)
		return "", false
	}
	return shipmentID, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
