package service

// Notifier receives a change after its transaction commits. Implementations
// must return quickly; requests wait on Publish.
type Notifier interface {
	Publish(action string, data interface{}, message string)
}

// Actions published to the change feed.
const (
	ActionSupplierCreated = "supplier_created"
	ActionSupplierUpdated = "supplier_updated"
	ActionSupplierDeleted = "supplier_deleted"
	ActionItemCreated     = "item_created"
	ActionItemUpdated     = "item_updated"
	ActionItemDeleted     = "item_deleted"
)

type noopNotifier struct{}

func (noopNotifier) Publish(string, interface{}, string) {}

func notifierOrNoop(n Notifier) Notifier {
	if n == nil {
		return noopNotifier{}
	}
	return n
}
