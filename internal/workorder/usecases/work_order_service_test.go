package usecases_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dcops-server/internal/shared_kernel/avro"
	"dcops-server/internal/workorder/domain"
	"dcops-server/internal/workorder/usecases"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("WorkOrderService", func() {
	var (
		service       *usecases.SimpleWorkOrderService
		workOrders    *fakeWorkOrderRepository
		assets        *fakeAssetRepository
		rooms         *fakeRoomRepository
		relationships *fakeRelationshipRepository
		changeLogs    *fakeChangeLogRepository
		unitOfWork    *fakeUnitOfWork
		tickets       *fakeTicketClient
		publisher     *fakePublisher
		ctx           context.Context
	)

	ginkgo.BeforeEach(func() {
		workOrders = newFakeWorkOrderRepository()
		assets = newFakeAssetRepository()
		rooms = newFakeRoomRepository()
		relationships = &fakeRelationshipRepository{}
		changeLogs = &fakeChangeLogRepository{}
		unitOfWork = newFakeUnitOfWork(workOrders, assets, relationships, changeLogs)
		tickets = &fakeTicketClient{}
		publisher = &fakePublisher{}
		ctx = context.Background()

		assets.add(domain.Asset{ID: "asset-1", SerialNumber: "SN-1", AssetTag: "TAG-1", Status: domain.AssetStatusInStock})
		assets.add(domain.Asset{ID: "asset-2", SerialNumber: "SN-2", Status: domain.AssetStatusInStock})

		rooms.add(domain.Room{ID: "room-a", Name: "DC1-ROOM-A", Abbreviation: "A01", Site: "DC1"})
		rooms.add(domain.Room{ID: "room-b", Name: "DC1-ROOM-B", Abbreviation: "B02", Site: "DC1"})

		var err error
		service, err = usecases.NewWorkOrderService(
			workOrders,
			assets,
			rooms,
			unitOfWork,
			usecases.NewOperationRegistry(),
			usecases.NewBatchIDGenerator(),
			usecases.NewSLACalculator(nil),
			tickets,
			&fakePublisherFactory{publisher: publisher},
		)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
	})

	ginkgo.Context("CreateWorkOrder", func() {
		var cmd usecases.CreateWorkOrderCommand

		ginkgo.BeforeEach(func() {
			cmd = usecases.CreateWorkOrderCommand{
				OperationType: domain.OperationTypeReceiving,
				Title:         "receive new servers",
				Applicant:     "alice",
				Assignee:      "bob",
				Reviewer:      "carol",
				Room:          "room-a",
				Remark:        "handle with care",
				Items: []usecases.CreateWorkOrderItem{
					{Identifier: "SN-1"},
					{Identifier: "TAG-1"},
				},
			}
		})

		ginkgo.When("the ticket system accepts the request", func() {
			ginkgo.It("should persist the work order with the order number", func() {
				tickets.orderNumber = "ORD-42"

				created, err := service.CreateWorkOrder(ctx, cmd)
				gomega.Expect(err).NotTo(gomega.HaveOccurred())
				gomega.Expect(created.BatchID).To(gomega.HavePrefix("RECV"))
				gomega.Expect(created.OrderNumber).To(gomega.Equal("ORD-42"))
				gomega.Expect(created.TicketStatus).To(gomega.Equal(domain.TicketStatusProcessing))
				gomega.Expect(created.Assignee).To(gomega.Equal("bob"))
				gomega.Expect(created.Reviewer).To(gomega.Equal("carol"))
				gomega.Expect(created.Remark).To(gomega.Equal("handle with care"))
				gomega.Expect(created.DeviceCount).To(gomega.Equal(2))

				stored, err := workOrders.GetByBatchID(ctx, created.BatchID)
				gomega.Expect(err).NotTo(gomega.HaveOccurred())
				gomega.Expect(stored.OrderNumber).To(gomega.Equal("ORD-42"))
				gomega.Expect(stored.Status).To(gomega.Equal(domain.StatusPending))
				gomega.Expect(stored.TicketStatus).To(gomega.Equal(domain.TicketStatusProcessing))
				gomega.Expect(stored.Items).To(gomega.HaveLen(2))
			})

			ginkgo.It("should leave the deadline unset when none is supplied", func() {
				created, err := service.CreateWorkOrder(ctx, cmd)
				gomega.Expect(err).NotTo(gomega.HaveOccurred())
				gomega.Expect(created.SLADeadline).To(gomega.BeNil())
			})

			ginkgo.It("should persist a caller supplied completion deadline", func() {
				deadline := time.Now().Add(4 * time.Hour).Truncate(time.Second)
				cmd.ExpectedCompletionTime = &deadline

				created, err := service.CreateWorkOrder(ctx, cmd)
				gomega.Expect(err).NotTo(gomega.HaveOccurred())
				gomega.Expect(created.SLADeadline).NotTo(gomega.BeNil())
				gomega.Expect(*created.SLADeadline).To(gomega.Equal(deadline))
			})

			ginkgo.It("should canonicalize the room from its abbreviation", func() {
				cmd.Room = "A01"

				created, err := service.CreateWorkOrder(ctx, cmd)
				gomega.Expect(err).NotTo(gomega.HaveOccurred())
				gomega.Expect(created.Room).To(gomega.Equal("DC1-ROOM-A"))
			})

			ginkgo.It("should publish a created audit event", func() {
				_, err := service.CreateWorkOrder(ctx, cmd)
				gomega.Expect(err).NotTo(gomega.HaveOccurred())

				gomega.Expect(publisher.events).To(gomega.HaveLen(1))
				event := publisher.events[0].message.(*avro.WorkOrderAuditEvent)
				gomega.Expect(event.Action).To(gomega.Equal("created"))
				gomega.Expect(event.Actor).To(gomega.Equal("alice"))
			})
		})

		ginkgo.When("the ticket system rejects the request", func() {
			ginkgo.BeforeEach(func() {
				tickets.err = errors.New("process not found")
			})

			ginkgo.It("should roll back every write and report an external failure", func() {
				_, err := service.CreateWorkOrder(ctx, cmd)

				var externalErr *usecases.ExternalSystemError
				gomega.Expect(errors.As(err, &externalErr)).To(gomega.BeTrue())
				gomega.Expect(externalErr.System).To(gomega.Equal("ticket"))
				gomega.Expect(unitOfWork.rolledBack).To(gomega.BeTrue())
				gomega.Expect(workOrders.workOrders).To(gomega.BeEmpty())
				gomega.Expect(publisher.events).To(gomega.BeEmpty())
			})
		})

		ginkgo.When("the request has no items", func() {
			ginkgo.It("should fail validation before touching any dependency", func() {
				cmd.Items = nil

				_, err := service.CreateWorkOrder(ctx, cmd)

				var validationErr *usecases.ValidationError
				gomega.Expect(errors.As(err, &validationErr)).To(gomega.BeTrue())
				gomega.Expect(tickets.requests).To(gomega.BeEmpty())
			})
		})

		ginkgo.When("the room cannot be resolved", func() {
			ginkgo.It("should report the room as not found", func() {
				cmd.Room = "DC9-ROOM-Z"

				_, err := service.CreateWorkOrder(ctx, cmd)

				var notFoundErr *usecases.NotFoundError
				gomega.Expect(errors.As(err, &notFoundErr)).To(gomega.BeTrue())
				gomega.Expect(notFoundErr.Resource).To(gomega.Equal("rooms"))
				gomega.Expect(notFoundErr.Identifiers).To(gomega.Equal([]string{"DC9-ROOM-Z"}))
			})
		})

		ginkgo.Context("device level power management", func() {
			ginkgo.BeforeEach(func() {
				deadline := time.Now().Add(2 * time.Hour)
				cmd.OperationType = domain.OperationTypePowerManagement
				cmd.ExpectedCompletionTime = &deadline
			})

			ginkgo.It("should require assignee, room and completion deadline", func() {
				cmd.Assignee = ""
				cmd.Room = ""
				cmd.ExpectedCompletionTime = nil
				cmd.Items = []usecases.CreateWorkOrderItem{
					{Identifier: "SN-1", Data: map[string]any{"power_action": "power_on"}},
				}

				_, err := service.CreateWorkOrder(ctx, cmd)

				var validationErr *usecases.ValidationError
				gomega.Expect(errors.As(err, &validationErr)).To(gomega.BeTrue())
				gomega.Expect(validationErr.Reasons).To(gomega.ConsistOf(
					gomega.ContainSubstring("assignee"),
					gomega.ContainSubstring("room"),
					gomega.ContainSubstring("expected_completion_time"),
				))
			})

			ginkgo.It("should stop at the first invalid item", func() {
				cmd.Items = []usecases.CreateWorkOrderItem{
					{Identifier: "SN-1", Data: map[string]any{"power_action": "power_off"}},
					{Identifier: "SN-2", Data: map[string]any{"power_action": "shutdown"}},
				}

				_, err := service.CreateWorkOrder(ctx, cmd)

				var validationErr *usecases.ValidationError
				gomega.Expect(errors.As(err, &validationErr)).To(gomega.BeTrue())
				gomega.Expect(validationErr.Reasons).To(gomega.HaveLen(1))
				gomega.Expect(validationErr.Reasons[0]).To(gomega.ContainSubstring("item 1"))
				gomega.Expect(validationErr.Reasons[0]).To(gomega.ContainSubstring("reason"))
			})

			ginkgo.It("should default the power type to AC when powering on", func() {
				cmd.Items = []usecases.CreateWorkOrderItem{
					{Identifier: "SN-1", Data: map[string]any{"power_action": "power_on"}},
				}

				created, err := service.CreateWorkOrder(ctx, cmd)
				gomega.Expect(err).NotTo(gomega.HaveOccurred())
				gomega.Expect(created.Items[0].Data["power_type"]).To(gomega.Equal("AC"))
			})
		})

		ginkgo.Context("room level power management", func() {
			ginkgo.BeforeEach(func() {
				cmd.OperationType = domain.OperationTypePowerManagement
				cmd.Items = nil
				cmd.ExpectedCompletionTime = nil
			})

			ginkgo.It("should accept a power off for a whole room without items", func() {
				cmd.Extra = map[string]any{"power_action": "power_off", "reason": "scheduled maintenance"}

				created, err := service.CreateWorkOrder(ctx, cmd)
				gomega.Expect(err).NotTo(gomega.HaveOccurred())
				gomega.Expect(created.BatchID).To(gomega.HavePrefix("PWR"))
				gomega.Expect(created.Items).To(gomega.BeEmpty())
				gomega.Expect(created.Room).To(gomega.Equal("DC1-ROOM-A"))
			})

			ginkgo.It("should require a reason when powering off a room", func() {
				cmd.Extra = map[string]any{"power_action": "power_off"}

				_, err := service.CreateWorkOrder(ctx, cmd)

				var validationErr *usecases.ValidationError
				gomega.Expect(errors.As(err, &validationErr)).To(gomega.BeTrue())
				gomega.Expect(validationErr.Reasons).To(gomega.ConsistOf(gomega.ContainSubstring("reason")))
			})

			ginkgo.It("should reject items on a room level request", func() {
				cmd.Extra = map[string]any{"power_action": "power_on"}
				cmd.Items = []usecases.CreateWorkOrderItem{{Identifier: "SN-1"}}

				_, err := service.CreateWorkOrder(ctx, cmd)

				var validationErr *usecases.ValidationError
				gomega.Expect(errors.As(err, &validationErr)).To(gomega.BeTrue())
				gomega.Expect(validationErr.Reasons).To(gomega.ConsistOf(gomega.ContainSubstring("items are not allowed")))
			})

			ginkgo.It("should reject an unknown room power action", func() {
				cmd.Extra = map[string]any{"power_action": "reboot"}

				_, err := service.CreateWorkOrder(ctx, cmd)

				var validationErr *usecases.ValidationError
				gomega.Expect(errors.As(err, &validationErr)).To(gomega.BeTrue())
				gomega.Expect(validationErr.Reasons).To(gomega.ConsistOf(gomega.ContainSubstring("reboot")))
			})

			ginkgo.It("should complete without touching any asset", func() {
				cmd.Extra = map[string]any{"power_action": "power_off", "reason": "scheduled maintenance"}

				created, err := service.CreateWorkOrder(ctx, cmd)
				gomega.Expect(err).NotTo(gomega.HaveOccurred())

				result, err := service.CompleteWorkOrder(ctx, created.BatchID, "bob")
				gomega.Expect(err).NotTo(gomega.HaveOccurred())
				gomega.Expect(result.Total).To(gomega.BeZero())
				gomega.Expect(assets.updated).To(gomega.BeEmpty())

				stored, _ := workOrders.GetByBatchID(ctx, created.BatchID)
				gomega.Expect(stored.Status).To(gomega.Equal(domain.StatusCompleted))
			})
		})

		ginkgo.When("an item is invalid and another references a missing asset", func() {
			ginkgo.It("should report the missing asset first", func() {
				cmd.OperationType = domain.OperationTypeRacking
				cmd.Items = []usecases.CreateWorkOrderItem{
					{Identifier: "SN-1", Data: map[string]any{"cabinet": "B-12"}},
					{Identifier: "GHOST-1", Data: map[string]any{"cabinet": "B-12", "u_position": "10"}},
				}

				_, err := service.CreateWorkOrder(ctx, cmd)

				var notFoundErr *usecases.NotFoundError
				gomega.Expect(errors.As(err, &notFoundErr)).To(gomega.BeTrue())
				gomega.Expect(notFoundErr.Identifiers).To(gomega.Equal([]string{"GHOST-1"}))
			})
		})

		ginkgo.When("a racking item carries an impossible u position", func() {
			ginkgo.It("should fail validation", func() {
				cmd.OperationType = domain.OperationTypeRacking
				for _, uPosition := range []string{"12-10", "50", "0-3"} {
					cmd.Items = []usecases.CreateWorkOrderItem{
						{Identifier: "SN-1", Data: map[string]any{"cabinet": "B-12", "u_position": uPosition}},
					}

					_, err := service.CreateWorkOrder(ctx, cmd)

					var validationErr *usecases.ValidationError
					gomega.Expect(errors.As(err, &validationErr)).To(gomega.BeTrue(), uPosition)
					gomega.Expect(validationErr.Reasons[0]).To(gomega.ContainSubstring("u position"))
				}
			})
		})

		ginkgo.When("referenced assets do not exist", func() {
			ginkgo.It("should aggregate the missing identifiers", func() {
				cmd.Items = []usecases.CreateWorkOrderItem{
					{Identifier: "SN-1"},
					{Identifier: "GHOST-1"},
					{Identifier: "GHOST-2"},
				}

				_, err := service.CreateWorkOrder(ctx, cmd)

				var notFoundErr *usecases.NotFoundError
				gomega.Expect(errors.As(err, &notFoundErr)).To(gomega.BeTrue())
				gomega.Expect(notFoundErr.Identifiers).To(gomega.Equal([]string{"GHOST-1", "GHOST-2"}))
				gomega.Expect(notFoundErr.Truncated).To(gomega.BeFalse())
			})

			ginkgo.It("should cap the reported identifiers at ten", func() {
				cmd.Items = nil
				for i := 0; i < 12; i++ {
					cmd.Items = append(cmd.Items, usecases.CreateWorkOrderItem{
						Identifier: fmt.Sprintf("GHOST-%d", i),
					})
				}

				_, err := service.CreateWorkOrder(ctx, cmd)

				var notFoundErr *usecases.NotFoundError
				gomega.Expect(errors.As(err, &notFoundErr)).To(gomega.BeTrue())
				gomega.Expect(notFoundErr.Identifiers).To(gomega.HaveLen(10))
				gomega.Expect(notFoundErr.Truncated).To(gomega.BeTrue())
				gomega.Expect(notFoundErr.Error()).To(gomega.ContainSubstring("..."))
			})
		})

		ginkgo.When("the operation type is unknown", func() {
			ginkgo.It("should pass validation and use the generic prefix", func() {
				cmd.OperationType = domain.OperationType("inventory")
				cmd.Items = []usecases.CreateWorkOrderItem{
					{Identifier: "SN-1", Data: map[string]any{"whatever": true}},
				}

				created, err := service.CreateWorkOrder(ctx, cmd)
				gomega.Expect(err).NotTo(gomega.HaveOccurred())
				gomega.Expect(created.BatchID).To(gomega.HavePrefix("WO"))
			})
		})
	})

	ginkgo.Context("CompleteWorkOrder", func() {
		var batchID string

		createReceiving := func(identifiers ...string) string {
			items := make([]usecases.CreateWorkOrderItem, 0, len(identifiers))
			for _, identifier := range identifiers {
				items = append(items, usecases.CreateWorkOrderItem{Identifier: identifier})
			}
			created, err := service.CreateWorkOrder(ctx, usecases.CreateWorkOrderCommand{
				OperationType: domain.OperationTypeReceiving,
				Title:         "receive",
				Applicant:     "alice",
				Room:          "B02",
				Items:         items,
			})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			return created.BatchID
		}

		ginkgo.When("all items succeed", func() {
			ginkgo.BeforeEach(func() {
				batchID = createReceiving("SN-1", "SN-2")
			})

			ginkgo.It("should complete the work order and move the assets", func() {
				result, err := service.CompleteWorkOrder(ctx, batchID, "bob")
				gomega.Expect(err).NotTo(gomega.HaveOccurred())
				gomega.Expect(result.Succeeded).To(gomega.Equal(2))
				gomega.Expect(result.Failures).To(gomega.BeEmpty())
				gomega.Expect(result.Partial()).To(gomega.BeFalse())

				stored, _ := workOrders.GetByBatchID(ctx, batchID)
				gomega.Expect(stored.Status).To(gomega.Equal(domain.StatusCompleted))
				gomega.Expect(stored.CompletedAt).NotTo(gomega.BeNil())

				moved, _ := assets.Resolve(ctx, "SN-1")
				gomega.Expect(moved.Room).To(gomega.Equal("DC1-ROOM-B"))
				gomega.Expect(moved.Status).To(gomega.Equal(domain.AssetStatusReceived))

				gomega.Expect(changeLogs.entries).NotTo(gomega.BeEmpty())
			})

			ginkgo.It("should attribute changes to the completer", func() {
				_, err := service.CompleteWorkOrder(ctx, batchID, "bob")
				gomega.Expect(err).NotTo(gomega.HaveOccurred())

				for _, entry := range changeLogs.entries {
					gomega.Expect(entry.ChangedBy).To(gomega.Equal("bob"))
				}
			})
		})

		ginkgo.When("one item cannot be applied", func() {
			ginkgo.BeforeEach(func() {
				batchID = createReceiving("SN-1", "SN-2")

				workOrder, _ := workOrders.GetByBatchID(ctx, batchID)
				workOrder.Items[1].AssetID = "vanished"
				workOrder.Items[1].AssetSerial = "vanished"
				workOrders.workOrders[batchID] = workOrder
			})

			ginkgo.It("should complete the order and report the partial result", func() {
				result, err := service.CompleteWorkOrder(ctx, batchID, "bob")
				gomega.Expect(err).NotTo(gomega.HaveOccurred())
				gomega.Expect(result.Succeeded).To(gomega.Equal(1))
				gomega.Expect(result.Failures).To(gomega.HaveLen(1))
				gomega.Expect(result.Partial()).To(gomega.BeTrue())

				stored, _ := workOrders.GetByBatchID(ctx, batchID)
				gomega.Expect(stored.Status).To(gomega.Equal(domain.StatusCompleted))
				gomega.Expect(stored.Items[1].Status).To(gomega.Equal(domain.ItemStatusFailed))
				gomega.Expect(stored.Items[1].FailureReason).NotTo(gomega.BeEmpty())
			})
		})

		ginkgo.When("the work order is already completed", func() {
			ginkgo.BeforeEach(func() {
				batchID = createReceiving("SN-1")
				_, err := service.CompleteWorkOrder(ctx, batchID, "bob")
				gomega.Expect(err).NotTo(gomega.HaveOccurred())
			})

			ginkgo.It("should report a conflict", func() {
				_, err := service.CompleteWorkOrder(ctx, batchID, "bob")

				var conflictErr *usecases.ConflictError
				gomega.Expect(errors.As(err, &conflictErr)).To(gomega.BeTrue())
				gomega.Expect(conflictErr.BatchID).To(gomega.Equal(batchID))
			})
		})

		ginkgo.When("the work order does not exist", func() {
			ginkgo.It("should return not found", func() {
				_, err := service.CompleteWorkOrder(ctx, "RECV19990101000000", "bob")
				gomega.Expect(err).To(gomega.MatchError(usecases.ErrWorkOrderNotFound))
			})
		})
	})

	ginkgo.Context("UpdateTicketStatus", func() {
		var batchID string

		ginkgo.BeforeEach(func() {
			tickets.orderNumber = "ORD-7"
			created, err := service.CreateWorkOrder(ctx, usecases.CreateWorkOrderCommand{
				OperationType: domain.OperationTypeMaintenance,
				Title:         "swap fans",
				Applicant:     "alice",
				Items: []usecases.CreateWorkOrderItem{
					{Identifier: "SN-1", Data: map[string]any{"description": "replace fan tray"}},
				},
			})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			batchID = created.BatchID
		})

		ginkgo.When("the ticket is approved", func() {
			ginkgo.It("should move the work order into progress", func() {
				err := service.UpdateTicketStatus(ctx, "ORD-7", true)
				gomega.Expect(err).NotTo(gomega.HaveOccurred())

				stored, _ := workOrders.GetByBatchID(ctx, batchID)
				gomega.Expect(stored.Status).To(gomega.Equal(domain.StatusInProgress))
				gomega.Expect(stored.TicketStatus).To(gomega.Equal(domain.TicketStatusCompleted))
				gomega.Expect(stored.StartTime).NotTo(gomega.BeNil())
			})
		})

		ginkgo.When("the ticket is rejected", func() {
			ginkgo.It("should cancel the work order", func() {
				err := service.UpdateTicketStatus(ctx, "ORD-7", false)
				gomega.Expect(err).NotTo(gomega.HaveOccurred())

				stored, _ := workOrders.GetByBatchID(ctx, batchID)
				gomega.Expect(stored.Status).To(gomega.Equal(domain.StatusCancelled))
				gomega.Expect(stored.TicketStatus).To(gomega.Equal(domain.TicketStatusFailed))
				gomega.Expect(stored.CloseTime).NotTo(gomega.BeNil())
			})
		})

		ginkgo.When("the work order is already cancelled", func() {
			ginkgo.It("should report a conflict", func() {
				gomega.Expect(service.UpdateTicketStatus(ctx, "ORD-7", false)).To(gomega.Succeed())

				err := service.UpdateTicketStatus(ctx, "ORD-7", true)

				var conflictErr *usecases.ConflictError
				gomega.Expect(errors.As(err, &conflictErr)).To(gomega.BeTrue())
			})
		})

		ginkgo.When("no work order carries the order number", func() {
			ginkgo.It("should return not found", func() {
				err := service.UpdateTicketStatus(ctx, "ORD-999", true)
				gomega.Expect(err).To(gomega.MatchError(usecases.ErrWorkOrderNotFound))
			})
		})
	})

	ginkgo.Context("OperationSummary", func() {
		ginkgo.It("should count work orders by status", func() {
			for i := 0; i < 3; i++ {
				_, err := service.CreateWorkOrder(ctx, usecases.CreateWorkOrderCommand{
					OperationType: domain.OperationTypeReceiving,
					Applicant:     "alice",
					Room:          "room-a",
					Items:         []usecases.CreateWorkOrderItem{{Identifier: "SN-1"}},
				})
				gomega.Expect(err).NotTo(gomega.HaveOccurred())
			}

			summary, err := service.OperationSummary(ctx)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(summary.Total).To(gomega.Equal(3))
			gomega.Expect(summary.Counts[domain.StatusPending]).To(gomega.Equal(3))
		})
	})
})
