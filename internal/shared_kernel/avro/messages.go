package avro

// WorkOrderAuditEvent is emitted after a work order transaction commits.
type WorkOrderAuditEvent struct {
	BatchID       string `avro:"batch_id"`
	OperationType string `avro:"operation_type"`
	Action        string `avro:"action"`
	Status        string `avro:"status"`
	Actor         string `avro:"actor"`
	NodeID        string `avro:"node_id"`
	OccurredAt    string `avro:"occurred_at"`
}

func (WorkOrderAuditEvent) AvroSchema() string {
	return `{
	  "type": "record",
	  "name": "WorkOrderAuditEvent",
	  "namespace": "dcops.workorder",
	  "fields": [
	    {"name": "batch_id", "type": "string"},
	    {"name": "operation_type", "type": "string"},
	    {"name": "action", "type": "string"},
	    {"name": "status", "type": "string"},
	    {"name": "actor", "type": "string"},
	    {"name": "node_id", "type": "string"},
	    {"name": "occurred_at", "type": "string"}
	  ]
	}`
}
