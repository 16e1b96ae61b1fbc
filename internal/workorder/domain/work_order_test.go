package domain_test

import (
	"dcops-server/internal/workorder/domain"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("WorkOrder", func() {
	ginkgo.Context("Status transitions", func() {
		ginkgo.When("moving forward through the lifecycle", func() {
			ginkgo.It("should allow pending to in_progress", func() {
				gomega.Expect(domain.StatusPending.CanTransitionTo(domain.StatusInProgress)).To(gomega.BeTrue())
			})

			ginkgo.It("should allow pending straight to completed", func() {
				gomega.Expect(domain.StatusPending.CanTransitionTo(domain.StatusCompleted)).To(gomega.BeTrue())
			})

			ginkgo.It("should allow in_progress to cancelled", func() {
				gomega.Expect(domain.StatusInProgress.CanTransitionTo(domain.StatusCancelled)).To(gomega.BeTrue())
			})
		})

		ginkgo.When("moving backward or out of a terminal status", func() {
			ginkgo.It("should reject in_progress back to pending", func() {
				gomega.Expect(domain.StatusInProgress.CanTransitionTo(domain.StatusPending)).To(gomega.BeFalse())
			})

			ginkgo.It("should reject completed to cancelled", func() {
				gomega.Expect(domain.StatusCompleted.CanTransitionTo(domain.StatusCancelled)).To(gomega.BeFalse())
			})

			ginkgo.It("should reject cancelled to completed", func() {
				gomega.Expect(domain.StatusCancelled.CanTransitionTo(domain.StatusCompleted)).To(gomega.BeFalse())
			})
		})

		ginkgo.When("transitioning a work order to completed", func() {
			ginkgo.It("should set the completion timestamp", func() {
				workOrder, err := domain.NewWorkOrderBuilder().
					WithBatchID("RECV20240101120000").
					WithOperationType(domain.OperationTypeReceiving).
					WithTitle("receive servers").
					Build()
				gomega.Expect(err).NotTo(gomega.HaveOccurred())
				gomega.Expect(workOrder.Status).To(gomega.Equal(domain.StatusPending))

				gomega.Expect(workOrder.TransitionTo(domain.StatusCompleted)).To(gomega.BeTrue())
				gomega.Expect(workOrder.Status).To(gomega.Equal(domain.StatusCompleted))
				gomega.Expect(workOrder.CompletedAt).NotTo(gomega.BeNil())
				gomega.Expect(workOrder.CloseTime).NotTo(gomega.BeNil())

				gomega.Expect(workOrder.TransitionTo(domain.StatusCancelled)).To(gomega.BeFalse())
			})
		})

		ginkgo.When("transitioning a work order through in_progress", func() {
			ginkgo.It("should record the start and close times", func() {
				workOrder, err := domain.NewWorkOrderBuilder().
					WithBatchID("RACK20240101120000").
					WithOperationType(domain.OperationTypeRacking).
					WithTitle("rack servers").
					Build()
				gomega.Expect(err).NotTo(gomega.HaveOccurred())
				gomega.Expect(workOrder.StartTime).To(gomega.BeNil())

				gomega.Expect(workOrder.TransitionTo(domain.StatusInProgress)).To(gomega.BeTrue())
				gomega.Expect(workOrder.StartTime).NotTo(gomega.BeNil())
				gomega.Expect(workOrder.CloseTime).To(gomega.BeNil())

				gomega.Expect(workOrder.TransitionTo(domain.StatusCancelled)).To(gomega.BeTrue())
				gomega.Expect(workOrder.CloseTime).NotTo(gomega.BeNil())
			})
		})
	})

	ginkgo.Context("Builder", func() {
		ginkgo.When("building with items", func() {
			ginkgo.It("should stamp the batch ID onto every item", func() {
				items := []domain.WorkOrderItem{
					domain.NewWorkOrderItem("SN-1", nil),
					domain.NewWorkOrderItem("SN-2", map[string]any{"u_position": "10-12"}),
				}

				workOrder, err := domain.NewWorkOrderBuilder().
					WithBatchID("RACK20240101120000").
					WithOperationType(domain.OperationTypeRacking).
					WithItems(items).
					Build()
				gomega.Expect(err).NotTo(gomega.HaveOccurred())
				gomega.Expect(workOrder.ID).NotTo(gomega.BeEmpty())
				for _, item := range workOrder.Items {
					gomega.Expect(item.BatchID).To(gomega.Equal("RACK20240101120000"))
					gomega.Expect(item.Status).To(gomega.Equal(domain.ItemStatusPending))
				}
			})

			ginkgo.It("should count devices and distinct cabinets", func() {
				items := []domain.WorkOrderItem{
					domain.NewWorkOrderItem("SN-1", map[string]any{"cabinet": "B-12"}),
					domain.NewWorkOrderItem("SN-2", map[string]any{"cabinet": "B-12"}),
					domain.NewWorkOrderItem("SN-3", map[string]any{"cabinet": "B-13"}),
				}

				workOrder, err := domain.NewWorkOrderBuilder().
					WithBatchID("RACK20240101120000").
					WithOperationType(domain.OperationTypeRacking).
					WithItems(items).
					Build()
				gomega.Expect(err).NotTo(gomega.HaveOccurred())
				gomega.Expect(workOrder.DeviceCount).To(gomega.Equal(3))
				gomega.Expect(workOrder.CabinetCount).To(gomega.Equal(2))
			})
		})
	})

	ginkgo.Context("Item summaries", func() {
		ginkgo.When("rendering the per-item description", func() {
			ginkgo.It("should describe a racking item with its target slot", func() {
				item := domain.NewWorkOrderItem("SN-1", map[string]any{"cabinet": "B-12", "u_position": "U10-U12"})
				gomega.Expect(item.Summary(domain.OperationTypeRacking)).To(gomega.Equal("rack SN-1 into B-12 U10-U12"))
			})

			ginkgo.It("should include the reason on a power off item", func() {
				item := domain.NewWorkOrderItem("SN-1", map[string]any{"power_action": "power_off", "reason": "decommission"})
				gomega.Expect(item.Summary(domain.OperationTypePowerManagement)).To(gomega.Equal("power off SN-1, reason: decommission"))
			})

			ginkgo.It("should fall back to the asset tag when the serial is empty", func() {
				item := domain.WorkOrderItem{AssetTag: "TAG-9"}
				gomega.Expect(item.Summary(domain.OperationTypeReceiving)).To(gomega.Equal("receive TAG-9"))
			})

			ginkgo.It("should render unknown types generically", func() {
				item := domain.NewWorkOrderItem("SN-1", nil)
				gomega.Expect(item.Summary(domain.OperationType("inventory"))).To(gomega.Equal("inventory SN-1"))
			})
		})
	})

	ginkgo.Context("OperationType", func() {
		ginkgo.When("resolving batch ID prefixes", func() {
			ginkgo.It("should map every known type to its prefix", func() {
				gomega.Expect(domain.OperationTypeReceiving.BatchIDPrefix()).To(gomega.Equal("RECV"))
				gomega.Expect(domain.OperationTypeRacking.BatchIDPrefix()).To(gomega.Equal("RACK"))
				gomega.Expect(domain.OperationTypePowerManagement.BatchIDPrefix()).To(gomega.Equal("PWR"))
				gomega.Expect(domain.OperationTypeConfiguration.BatchIDPrefix()).To(gomega.Equal("CONF"))
				gomega.Expect(domain.OperationTypeNetworkCable.BatchIDPrefix()).To(gomega.Equal("NET"))
				gomega.Expect(domain.OperationTypeMaintenance.BatchIDPrefix()).To(gomega.Equal("MAINT"))
			})

			ginkgo.It("should fall back to the generic prefix for unknown types", func() {
				gomega.Expect(domain.OperationType("inventory").BatchIDPrefix()).To(gomega.Equal("WO"))
				gomega.Expect(domain.OperationType("inventory").IsKnown()).To(gomega.BeFalse())
			})
		})
	})
})
