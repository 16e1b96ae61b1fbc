package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"dcops-server/internal/infra/cache"
	"dcops-server/internal/workorder/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const _cabinetRegistryTTL = 5 * time.Minute

var unparsedLocationCounter = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "dcops_server",
	Name:      "unparsed_locations_total",
	Help:      "Number of asset locations that could not be parsed into a cabinet code",
})

// CabinetOccupancy aggregates the assets of one cabinet in a room. InBatch
// lists serials that belong to the work order the caller asked about.
type CabinetOccupancy struct {
	Code       string
	Registered bool
	Capacity   int
	PowerType  string
	Status     string
	InBatch    []string
	Others     []string
}

// RoomCabinetSummary is the per-room occupancy view. Unparsed carries the
// serials whose location did not yield a cabinet code; those assets are
// reported, not dropped.
type RoomCabinetSummary struct {
	Room     string
	Cabinets []CabinetOccupancy
	Unparsed []string
}

func NewCabinetAggregator(
	assets AssetRepository,
	cabinets CabinetRepository,
	workOrders WorkOrderRepository,
	registryCache cache.Cache,
) *CabinetAggregator {
	return &CabinetAggregator{
		assets:        assets,
		cabinets:      cabinets,
		workOrders:    workOrders,
		registryCache: registryCache,
	}
}

var _ RoomSummaryService = (*CabinetAggregator)(nil)

// CabinetAggregator builds room occupancy summaries from free-text asset
// locations merged with the cabinet registry.
type CabinetAggregator struct {
	assets        AssetRepository
	cabinets      CabinetRepository
	workOrders    WorkOrderRepository
	registryCache cache.Cache
}

func (a *CabinetAggregator) RoomCabinetSummary(ctx context.Context, room, batchID string) (RoomCabinetSummary, error) {
	assets, err := a.assets.FindByRoom(ctx, room)
	if err != nil {
		slog.Error("finding assets by room", slog.String("room", room), slog.String("error", err.Error()))
		return RoomCabinetSummary{}, errUnknown
	}

	registered, err := a.registeredCabinets(ctx, room)
	if err != nil {
		slog.Error("loading cabinet registry", slog.String("room", room), slog.String("error", err.Error()))
		return RoomCabinetSummary{}, errUnknown
	}

	inBatch := map[string]bool{}
	if batchID != "" {
		workOrder, err := a.workOrders.GetByBatchID(ctx, batchID)
		if err != nil && err != ErrWorkOrderNotFound {
			slog.Error("getting work order for summary", slog.String("batch_id", batchID), slog.String("error", err.Error()))
			return RoomCabinetSummary{}, errUnknown
		}
		for _, item := range workOrder.Items {
			inBatch[item.AssetSerial] = true
		}
	}

	summary := RoomCabinetSummary{Room: room}
	occupancies := map[string]*CabinetOccupancy{}

	for code, cabinet := range registered {
		occupancies[code] = &CabinetOccupancy{
			Code:       code,
			Registered: true,
			Capacity:   cabinet.Capacity,
			PowerType:  cabinet.PowerType,
			Status:     cabinet.Status,
		}
	}

	for _, asset := range assets {
		ref := domain.ExtractCabinet(asset.Cabinet)
		if !ref.Parsed {
			unparsedLocationCounter.Inc()
			summary.Unparsed = append(summary.Unparsed, asset.SerialNumber)
			continue
		}

		occupancy, found := occupancies[ref.Code]
		if !found {
			occupancy = &CabinetOccupancy{Code: ref.Code}
			occupancies[ref.Code] = occupancy
		}

		if inBatch[asset.SerialNumber] {
			occupancy.InBatch = append(occupancy.InBatch, asset.SerialNumber)
		} else {
			occupancy.Others = append(occupancy.Others, asset.SerialNumber)
		}
	}

	for _, occupancy := range occupancies {
		summary.Cabinets = append(summary.Cabinets, *occupancy)
	}
	sort.Slice(summary.Cabinets, func(i, j int) bool {
		return summary.Cabinets[i].Code < summary.Cabinets[j].Code
	})

	return summary, nil
}

func (a *CabinetAggregator) registeredCabinets(ctx context.Context, room string) (map[string]domain.Cabinet, error) {
	key := fmt.Sprintf("cabinet-registry:%s", room)
	value, err := a.registryCache.GetOrSet(ctx, key, _cabinetRegistryTTL, func() (any, error) {
		cabinets, err := a.cabinets.FindByRoom(ctx, room)
		if err != nil {
			return nil, err
		}

		registry := make(map[string]domain.Cabinet, len(cabinets))
		for _, cabinet := range cabinets {
			registry[cabinet.Code] = cabinet
		}
		return registry, nil
	})
	if err != nil {
		return nil, err
	}

	registry, ok := value.(map[string]domain.Cabinet)
	if !ok {
		return nil, fmt.Errorf("unexpected cache value type %T", value)
	}
	return registry, nil
}
