package model

// Supplier owns zero or more inventory items.
type Supplier struct {
	ID          uint    `gorm:"column:id_proveedor;primaryKey;autoIncrement" json:"id_proveedor"`
	CompanyName string  `gorm:"column:nombre_compania;type:varchar(150);not null" json:"nombre_compania"`
	Phone       *string `gorm:"column:telefono;type:varchar(20)" json:"telefono"`
	// uniqueness is case-insensitive: the index is on lower(email)
	Email string `gorm:"column:email;type:varchar(100);not null;uniqueIndex:proveedores_email_lower_key,expression:lower(email)" json:"email"`
	Registration
}

func (Supplier) TableName() string {
	return "proveedores"
}

// SupplierBrief is the projection used by selection lists.
type SupplierBrief struct {
	ID          uint   `gorm:"column:id_proveedor" json:"id_proveedor"`
	CompanyName string `gorm:"column:nombre_compania" json:"nombre_compania"`
}

// SupplierSummary is a supplier without its registration timestamp.
type SupplierSummary struct {
	ID          uint    `gorm:"column:id_proveedor" json:"id_proveedor"`
	CompanyName string  `gorm:"column:nombre_compania" json:"nombre_compania"`
	Phone       *string `gorm:"column:telefono" json:"telefono"`
	Email       string  `gorm:"column:email" json:"email"`
}
