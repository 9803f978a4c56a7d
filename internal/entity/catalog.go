package entity

import "coldstore/internal/domain"

var (
	adminOnly      = []domain.Role{domain.RoleAdmin}
	adminOrManager = []domain.Role{domain.RoleAdmin, domain.RoleManager}
)

func str(name, column string) Field  { return Field{Name: name, Column: column, Kind: KindString} }
func flag(name, column string) Field { return Field{Name: name, Column: column, Kind: KindBool} }
func num(name, column string) Field  { return Field{Name: name, Column: column, Kind: KindNumber} }
func ref(name, column string) Field  { return Field{Name: name, Column: column, Kind: KindRef} }

func asc(field string) domain.Sort { return domain.Sort{Field: field} }

// Catalog returns fresh copies of the built-in master-data specs.
func Catalog() []*Spec {
	return []*Spec{
		{
			Name: "account", Slug: "accounts", Label: "Account", ResponseKey: "accounts", Table: "accounts",
			Fields: []Field{
				str("accountNumber", "account_number"),
				str("accountName", "account_name"),
				str("remarks", "remarks"),
				flag("isActive", "is_active"),
			},
			Searchable:  []string{"accountNumber", "accountName"},
			DefaultSort: asc("accountName"),
			Roles:       adminOrManager,
		},
		{
			Name: "customer", Slug: "customers", Label: "Customer", ResponseKey: "customers", Table: "customers",
			Fields: []Field{
				str("customerNumber", "customer_number"),
				str("customerName", "customer_name"),
			},
			Searchable:  []string{"customerNumber", "customerName"},
			DefaultSort: asc("customerName"),
			Roles:       adminOrManager,
		},
		{
			Name: "company", Slug: "companies", Label: "Company", ResponseKey: "companies", Table: "companies",
			Fields: []Field{
				str("companyCode", "company_code"),
				str("companyName", "company_name"),
				str("phone", "phone"),
				str("email", "email"),
			},
			Searchable:  []string{"companyCode", "companyName"},
			DefaultSort: asc("companyName"),
			Roles:       adminOrManager,
		},
		{
			Name: "location", Slug: "locations", Label: "Location", ResponseKey: "locations", Table: "locations",
			Fields: []Field{
				str("locationCode", "location_code"),
				str("locationName", "location_name"),
				str("address", "address"),
			},
			Searchable:  []string{"locationCode", "locationName"},
			DefaultSort: asc("locationName"),
			Roles:       adminOrManager,
		},
		{
			Name: "material", Slug: "materials", Label: "Material", ResponseKey: "materials", Table: "materials",
			Fields: []Field{
				str("materialCode", "material_code"),
				str("materialName", "material_name"),
				ref("categoryId", "category_id"),
				ref("unitId", "unit_id"),
				flag("isActive", "is_active"),
			},
			Searchable:  []string{"materialCode", "materialName"},
			DefaultSort: asc("materialName"),
			Roles:       adminOrManager,
			IDLookup:    true,
		},
		{
			Name: "materialCategory", Slug: "material-categories", Label: "Material category",
			ResponseKey: "materialCategories", Table: "material_categories",
			Fields: []Field{
				str("categoryCode", "category_code"),
				str("categoryName", "category_name"),
			},
			Searchable:  []string{"categoryCode", "categoryName"},
			DefaultSort: asc("categoryName"),
			Roles:       adminOrManager,
		},
		{
			Name: "room", Slug: "rooms", Label: "Room", ResponseKey: "rooms", Table: "rooms",
			Fields: []Field{
				str("roomCode", "room_code"),
				str("roomName", "room_name"),
				ref("locationId", "location_id"),
				num("temperature", "temperature"),
				num("capacity", "capacity"),
			},
			Searchable:  []string{"roomCode", "roomName"},
			Sortable:    []string{"temperature", "capacity"},
			DefaultSort: asc("roomName"),
			Roles:       adminOrManager,
		},
		{
			Name: "unit", Slug: "units", Label: "Unit", ResponseKey: "units", Table: "units",
			Fields: []Field{
				str("unitCode", "unit_code"),
				str("unitName", "unit_name"),
			},
			Searchable:  []string{"unitCode", "unitName"},
			DefaultSort: asc("unitName"),
			Roles:       adminOrManager,
		},
		{
			Name: "tax", Slug: "taxes", Label: "Tax", ResponseKey: "taxes", Table: "taxes",
			Fields: []Field{
				str("taxCode", "tax_code"),
				str("taxName", "tax_name"),
				num("rate", "rate"),
			},
			Searchable:  []string{"taxCode", "taxName"},
			Sortable:    []string{"rate"},
			DefaultSort: asc("taxName"),
			Roles:       adminOrManager,
		},
		{
			Name: "term", Slug: "terms", Label: "Term", ResponseKey: "terms", Table: "terms",
			Fields: []Field{
				str("termCode", "term_code"),
				str("termName", "term_name"),
				num("days", "days"),
			},
			Searchable:  []string{"termCode", "termName"},
			Sortable:    []string{"days"},
			DefaultSort: asc("termName"),
			Roles:       adminOrManager,
		},
		{
			Name: "user", Slug: "users", Label: "User", ResponseKey: "users", Table: "users",
			Fields: []Field{
				str("name", "name"),
				str("email", "email"),
				str("role", "role"),
				flag("isActive", "is_active"),
			},
			Searchable:  []string{"name", "email"},
			Sortable:    []string{"role"},
			DefaultSort: asc("name"),
			Roles:       adminOnly,
		},
		{
			Name: "permission", Slug: "permissions", Label: "Permission", ResponseKey: "permissions", Table: "permissions",
			Fields: []Field{
				str("route", "route"),
				str("role", "role"),
				str("description", "description"),
			},
			Searchable:  []string{"route", "role"},
			DefaultSort: asc("route"),
			Roles:       adminOnly,
		},
	}
}

// Default returns a registry holding the built-in catalog.
func Default() *Registry {
	r := NewRegistry()
	r.MustRegister(Catalog()...)
	return r
}
