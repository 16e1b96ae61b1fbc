package domain

// OperationType identifies the kind of work a work order carries. Each type
// has its own batch ID prefix and its own validation and completion rules.
type OperationType string

const (
	OperationTypeReceiving       OperationType = "receiving"
	OperationTypeRacking         OperationType = "racking"
	OperationTypePowerManagement OperationType = "power_management"
	OperationTypeConfiguration   OperationType = "configuration"
	OperationTypeNetworkCable    OperationType = "network_cable"
	OperationTypeMaintenance     OperationType = "maintenance"
)

var batchIDPrefixes = map[OperationType]string{
	OperationTypeReceiving:       "RECV",
	OperationTypeRacking:         "RACK",
	OperationTypePowerManagement: "PWR",
	OperationTypeConfiguration:   "CONF",
	OperationTypeNetworkCable:    "NET",
	OperationTypeMaintenance:     "MAINT",
}

var operationTypeLabels = map[OperationType]string{
	OperationTypeReceiving:       "Receiving",
	OperationTypeRacking:         "Racking",
	OperationTypePowerManagement: "Power Management",
	OperationTypeConfiguration:   "Configuration",
	OperationTypeNetworkCable:    "Network Cabling",
	OperationTypeMaintenance:     "Maintenance",
}

func (t OperationType) String() string {
	return string(t)
}

// BatchIDPrefix returns the prefix used when generating batch IDs. Unknown
// operation types share the generic "WO" prefix.
func (t OperationType) BatchIDPrefix() string {
	if prefix, found := batchIDPrefixes[t]; found {
		return prefix
	}
	return "WO"
}

func (t OperationType) DisplayLabel() string {
	if label, found := operationTypeLabels[t]; found {
		return label
	}
	return string(t)
}

func (t OperationType) IsKnown() bool {
	_, found := batchIDPrefixes[t]
	return found
}
