package domain

// Outcome strings returned to clients. They are part of the public contract and must not change.
const (
	MsgUserMismatch          = "Logged In user is different"
	MsgCartEmpty             = "Cart is empty"
	MsgOrderAlreadyDelivered = "Order is already delivered"
	MsgOrderDeleted          = "Order is deleted Successfully"
	MsgOrderAlreadyAssigned  = "Order is already assigned to some other driver"
	MsgNoDeliveryPartners    = "No delivery partners are present"
	MsgNoOrdersAssigned      = "No Orders assigned"
	MsgStatusUpdated         = "Status Updated"
	MsgPaymentPending        = "Payment is pending"
	MsgItemAlreadyDelivered  = "Item is already delivered"
)
