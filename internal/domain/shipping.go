package domain

// ShippingDetails is the checkout form. Field checks live in the validate package.
type ShippingDetails struct {
	Name     string
	Line1    string
	Line2    string
	Line3    string
	City     string
	State    string
	Zip      string
	Country  string
	GiftWrap bool
}
