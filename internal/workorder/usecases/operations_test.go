package usecases_test

import (
	"context"

	"dcops-server/internal/workorder/domain"
	"dcops-server/internal/workorder/usecases"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("OperationRegistry", func() {
	var (
		registry      *usecases.OperationRegistry
		assets        *fakeAssetRepository
		relationships *fakeRelationshipRepository
		changeLogs    *fakeChangeLogRepository
		repos         usecases.TxRepos
		workOrder     domain.WorkOrder
		ctx           context.Context
	)

	newItem := func(serial string, data map[string]any) domain.WorkOrderItem {
		item := domain.NewWorkOrderItem(serial, data)
		item.BatchID = workOrder.BatchID
		return item
	}

	ginkgo.BeforeEach(func() {
		registry = usecases.NewOperationRegistry()
		assets = newFakeAssetRepository()
		relationships = &fakeRelationshipRepository{}
		changeLogs = &fakeChangeLogRepository{}
		repos = usecases.TxRepos{
			WorkOrders:    newFakeWorkOrderRepository(),
			Assets:        assets,
			Relationships: relationships,
			ChangeLogs:    changeLogs,
		}
		workOrder = domain.WorkOrder{
			BatchID:     "RACK20240601080000",
			Room:        "DC1-ROOM-A",
			Applicant:   "alice",
			CompletedBy: "bob",
		}
		ctx = context.Background()

		assets.add(domain.Asset{ID: "srv-1", SerialNumber: "SN-1", Status: domain.AssetStatusInStock})
		assets.add(domain.Asset{ID: "srv-2", SerialNumber: "SN-2", Status: domain.AssetStatusInStock})
	})

	ginkgo.Context("unknown operation types", func() {
		ginkgo.It("should fall back to a passthrough handler", func() {
			handler := registry.HandlerFor(domain.OperationType("inventory"))

			item := usecases.CreateWorkOrderItem{Data: map[string]any{"anything": "goes"}}
			gomega.Expect(handler.ValidateItem(&item)).To(gomega.BeEmpty())

			workOrderItem := newItem("SN-1", nil)
			gomega.Expect(handler.CompleteItem(ctx, repos, &workOrder, &workOrderItem)).To(gomega.Succeed())
			gomega.Expect(changeLogs.entries).To(gomega.BeEmpty())
		})
	})

	ginkgo.Context("racking", func() {
		var handler usecases.OperationHandler

		ginkgo.BeforeEach(func() {
			handler = registry.HandlerFor(domain.OperationTypeRacking)
		})

		ginkgo.It("should require cabinet and u_position", func() {
			item := usecases.CreateWorkOrderItem{Identifier: "SN-1"}

			reasons := handler.ValidateItem(&item)
			gomega.Expect(reasons).To(gomega.ConsistOf(
				gomega.ContainSubstring("cabinet"),
				gomega.ContainSubstring("u_position"),
			))
		})

		ginkgo.It("should reject an inverted u position range", func() {
			item := usecases.CreateWorkOrderItem{
				Identifier: "SN-1",
				Data:       map[string]any{"cabinet": "B-12", "u_position": "12-10"},
			}

			reasons := handler.ValidateItem(&item)
			gomega.Expect(reasons).To(gomega.ConsistOf(gomega.ContainSubstring("greater than end")))
		})

		ginkgo.It("should reject u positions outside the rack", func() {
			for _, uPosition := range []string{"50", "0-3"} {
				item := usecases.CreateWorkOrderItem{
					Identifier: "SN-1",
					Data:       map[string]any{"cabinet": "B-12", "u_position": uPosition},
				}

				reasons := handler.ValidateItem(&item)
				gomega.Expect(reasons).To(gomega.ConsistOf(gomega.ContainSubstring("between 1 and 48")))
			}
		})

		ginkgo.It("should place the asset into the cabinet", func() {
			item := newItem("SN-1", map[string]any{"cabinet": "B-12", "u_position": "10-12"})

			gomega.Expect(handler.CompleteItem(ctx, repos, &workOrder, &item)).To(gomega.Succeed())

			placed, _ := assets.Resolve(ctx, "SN-1")
			gomega.Expect(placed.Cabinet).To(gomega.Equal("B-12"))
			gomega.Expect(placed.UPosition).To(gomega.Equal("U10-U12"))
			gomega.Expect(placed.Status).To(gomega.Equal(domain.AssetStatusRacked))

			gomega.Expect(changeLogs.entries).To(gomega.HaveLen(2))
			gomega.Expect(changeLogs.entries[0].Field).To(gomega.Equal("location"))
			gomega.Expect(changeLogs.entries[0].NewValue).To(gomega.Equal("B-12 U10-U12"))
		})
	})

	ginkgo.Context("power management", func() {
		var handler usecases.OperationHandler

		ginkgo.BeforeEach(func() {
			handler = registry.HandlerFor(domain.OperationTypePowerManagement)
		})

		ginkgo.It("should default the power type to AC when powering on", func() {
			item := usecases.CreateWorkOrderItem{
				Identifier: "SN-1",
				Data:       map[string]any{"power_action": "power_on"},
			}

			gomega.Expect(handler.ValidateItem(&item)).To(gomega.BeEmpty())
			gomega.Expect(item.Data["power_type"]).To(gomega.Equal("AC"))
		})

		ginkgo.It("should keep an explicit power type", func() {
			item := usecases.CreateWorkOrderItem{
				Identifier: "SN-1",
				Data:       map[string]any{"power_action": "power_on", "power_type": "DC"},
			}

			gomega.Expect(handler.ValidateItem(&item)).To(gomega.BeEmpty())
			gomega.Expect(item.Data["power_type"]).To(gomega.Equal("DC"))
		})

		ginkgo.It("should require a reason when powering off", func() {
			item := usecases.CreateWorkOrderItem{
				Identifier: "SN-1",
				Data:       map[string]any{"power_action": "power_off"},
			}

			reasons := handler.ValidateItem(&item)
			gomega.Expect(reasons).To(gomega.ConsistOf(gomega.ContainSubstring("reason")))
		})

		ginkgo.It("should reject unknown actions", func() {
			item := usecases.CreateWorkOrderItem{
				Identifier: "SN-1",
				Data:       map[string]any{"power_action": "reboot"},
			}

			reasons := handler.ValidateItem(&item)
			gomega.Expect(reasons).To(gomega.ConsistOf(gomega.ContainSubstring("reboot")))
		})

		ginkgo.It("should power the asset on and stamp the execution", func() {
			item := newItem("SN-1", map[string]any{"power_action": "power_on", "power_type": "AC"})

			gomega.Expect(handler.CompleteItem(ctx, repos, &workOrder, &item)).To(gomega.Succeed())

			powered, _ := assets.Resolve(ctx, "SN-1")
			gomega.Expect(powered.Status).To(gomega.Equal(domain.AssetStatusPoweredOn))
			gomega.Expect(powered.PowerType).To(gomega.Equal("AC"))
			gomega.Expect(item.Data["executed_by"]).To(gomega.Equal("bob"))
			gomega.Expect(item.Data).To(gomega.HaveKey("executed_at"))
		})

		ginkgo.It("should power the asset off", func() {
			item := newItem("SN-1", map[string]any{"power_action": "power_off", "reason": "maintenance window"})

			gomega.Expect(handler.CompleteItem(ctx, repos, &workOrder, &item)).To(gomega.Succeed())

			powered, _ := assets.Resolve(ctx, "SN-1")
			gomega.Expect(powered.Status).To(gomega.Equal(domain.AssetStatusPoweredOff))
		})
	})

	ginkgo.Context("configuration", func() {
		var handler usecases.OperationHandler

		ginkgo.BeforeEach(func() {
			handler = registry.HandlerFor(domain.OperationTypeConfiguration)
		})

		ginkgo.It("should require a quantity for components by serial number", func() {
			item := usecases.CreateWorkOrderItem{
				Identifier: "SN-1",
				Data:       map[string]any{"sn": "SN-2"},
			}

			reasons := handler.ValidateItem(&item)
			gomega.Expect(reasons).To(gomega.ConsistOf(gomega.ContainSubstring("quantity")))
		})

		ginkgo.It("should accept a virtual component by title", func() {
			item := usecases.CreateWorkOrderItem{
				Identifier: "SN-1",
				Data:       map[string]any{"title": "raid controller license"},
			}

			gomega.Expect(handler.ValidateItem(&item)).To(gomega.BeEmpty())
		})

		ginkgo.It("should reject items without sn or title", func() {
			item := usecases.CreateWorkOrderItem{Identifier: "SN-1"}

			reasons := handler.ValidateItem(&item)
			gomega.Expect(reasons).To(gomega.ConsistOf(gomega.ContainSubstring("sn with quantity or title")))
		})

		ginkgo.It("should attach a physical component to the parent", func() {
			item := newItem("SN-1", map[string]any{"sn": "SN-2", "quantity": 1})

			gomega.Expect(handler.CompleteItem(ctx, repos, &workOrder, &item)).To(gomega.Succeed())

			gomega.Expect(relationships.edges).To(gomega.HaveLen(1))
			edge := relationships.edges[0]
			gomega.Expect(edge.ParentID).To(gomega.Equal("srv-1"))
			gomega.Expect(edge.ChildID).To(gomega.Equal("srv-2"))
			gomega.Expect(edge.Kind).To(gomega.Equal(domain.RelationshipComponent))

			parent, _ := assets.GetByID(ctx, "srv-1")
			gomega.Expect(parent.Status).To(gomega.Equal(domain.AssetStatusConfigured))

			component, _ := assets.GetByID(ctx, "srv-2")
			gomega.Expect(component.Status).To(gomega.Equal(domain.AssetStatusInstalled))
		})

		ginkgo.It("should attach downstream when requested", func() {
			item := newItem("SN-1", map[string]any{"sn": "SN-2", "quantity": 1, "attach": "downstream"})

			gomega.Expect(handler.CompleteItem(ctx, repos, &workOrder, &item)).To(gomega.Succeed())
			gomega.Expect(relationships.edges[0].Kind).To(gomega.Equal(domain.RelationshipDownstream))
		})

		ginkgo.It("should record virtual components with their title", func() {
			item := newItem("SN-1", map[string]any{"title": "raid controller license"})

			gomega.Expect(handler.CompleteItem(ctx, repos, &workOrder, &item)).To(gomega.Succeed())

			edge := relationships.edges[0]
			gomega.Expect(edge.Kind).To(gomega.Equal(domain.RelationshipComponentVirtual))
			gomega.Expect(edge.ChildID).To(gomega.BeEmpty())
			gomega.Expect(edge.Label).To(gomega.Equal("raid controller license"))
		})

		ginkgo.It("should not rewrite the parent status twice", func() {
			first := newItem("SN-1", map[string]any{"title": "license A"})
			second := newItem("SN-1", map[string]any{"title": "license B"})

			gomega.Expect(handler.CompleteItem(ctx, repos, &workOrder, &first)).To(gomega.Succeed())
			gomega.Expect(handler.CompleteItem(ctx, repos, &workOrder, &second)).To(gomega.Succeed())

			statusEntries := 0
			for _, entry := range changeLogs.entries {
				if entry.Field == "status" {
					statusEntries++
				}
			}
			gomega.Expect(statusEntries).To(gomega.Equal(1))
		})
	})

	ginkgo.Context("network cabling", func() {
		var handler usecases.OperationHandler

		ginkgo.BeforeEach(func() {
			handler = registry.HandlerFor(domain.OperationTypeNetworkCable)
		})

		ginkgo.It("should require source port and destination", func() {
			item := usecases.CreateWorkOrderItem{Identifier: "SN-1"}

			reasons := handler.ValidateItem(&item)
			gomega.Expect(reasons).To(gomega.ConsistOf(
				gomega.ContainSubstring("source_port"),
				gomega.ContainSubstring("destination"),
			))
		})

		ginkgo.It("should record the cable run between the assets", func() {
			item := newItem("SN-1", map[string]any{"source_port": "eth0", "destination": "SN-2"})

			gomega.Expect(handler.CompleteItem(ctx, repos, &workOrder, &item)).To(gomega.Succeed())

			edge := relationships.edges[0]
			gomega.Expect(edge.ParentID).To(gomega.Equal("srv-1"))
			gomega.Expect(edge.ChildID).To(gomega.Equal("srv-2"))
			gomega.Expect(edge.Kind).To(gomega.Equal(domain.RelationshipDownstream))
			gomega.Expect(edge.Label).To(gomega.Equal("eth0"))

			gomega.Expect(changeLogs.entries).To(gomega.HaveLen(1))
			gomega.Expect(changeLogs.entries[0].Field).To(gomega.Equal("cabling"))
		})

		ginkgo.It("should fail when the destination cannot be resolved", func() {
			item := newItem("SN-1", map[string]any{"source_port": "eth0", "destination": "GHOST"})

			err := handler.CompleteItem(ctx, repos, &workOrder, &item)
			gomega.Expect(err).To(gomega.MatchError(usecases.ErrAssetNotFound))
		})
	})

	ginkgo.Context("maintenance", func() {
		var handler usecases.OperationHandler

		ginkgo.BeforeEach(func() {
			handler = registry.HandlerFor(domain.OperationTypeMaintenance)
		})

		ginkgo.It("should require a description", func() {
			item := usecases.CreateWorkOrderItem{Identifier: "SN-1"}

			reasons := handler.ValidateItem(&item)
			gomega.Expect(reasons).To(gomega.ConsistOf(gomega.ContainSubstring("description")))
		})

		ginkgo.It("should log the work without touching the asset", func() {
			item := newItem("SN-1", map[string]any{"description": "replace fan tray"})

			gomega.Expect(handler.CompleteItem(ctx, repos, &workOrder, &item)).To(gomega.Succeed())

			untouched, _ := assets.Resolve(ctx, "SN-1")
			gomega.Expect(untouched.Status).To(gomega.Equal(domain.AssetStatusInStock))
			gomega.Expect(assets.updated).To(gomega.BeEmpty())

			gomega.Expect(changeLogs.entries).To(gomega.HaveLen(1))
			gomega.Expect(changeLogs.entries[0].Field).To(gomega.Equal("maintenance"))
			gomega.Expect(changeLogs.entries[0].NewValue).To(gomega.Equal("replace fan tray"))
		})
	})
})
