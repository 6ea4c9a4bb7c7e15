package render

// Fragment markup. Card and control output must stay byte-stable for a
// given input: the storefront re-renders controls after every cart
// mutation and equality of repeated renders is load-bearing.
const templateText = `
{{- define "cartControls" -}}
{{- if gt .Quantity 0 -}}
<div class="quantity-controls" data-product-id="{{.ID}}"><button class="btn-quantity" data-action="decrement">&minus;</button><span class="quantity-display">{{.Quantity}}</span><button class="btn-quantity" data-action="increment">+</button></div>
{{- else -}}
<button class="add-to-cart" data-product-id="{{.ID}}" data-name="{{.Name}}" data-price="{{.Price}}" data-image="{{.ImageURL}}">Add to Cart</button>
{{- end -}}
{{- end -}}

{{- define "productCard" -}}
<div class="product-card" data-product-id="{{.ID}}">
<img src="{{.ImageURL}}" class="product-image" alt="{{.Name}}">
<div class="product-info">
<h3 class="product-title">{{.Name}}</h3>
<p class="product-description">{{.Description}}</p>
<div class="product-bottom-section">
<div class="product-price">&#8377;{{.Price}}</div>
{{template "cartControls" .}}
</div>
</div>
</div>
{{- end -}}

{{- define "catalog" -}}
<div id="catalog">
{{- if .Notice}}
<div class="notice">{{.Notice}}</div>
{{- end}}
<section class="section" id="trending"><div class="container">
<h2 class="section-title">Trending Products</h2>
<div class="product-grid" id="trending-products">{{range .Trending}}{{.}}{{end}}</div>
</div></section>
{{- range .Sections}}
<section class="section" id="{{.Slug}}"><div class="container">
<h2 class="section-title">{{.Title}}</h2>
<div class="product-grid" id="{{.Slug}}-products">{{range .Cards}}{{.}}{{end}}</div>
</div></section>
{{- end}}
</div>
{{- end -}}

{{- define "searchResults" -}}
<section class="section" id="search-results-section"><div class="container">
<h2 class="section-title">Search Results for &quot;{{.Term}}&quot; ({{len .Cards}} found)</h2>
<div class="search-results-grid">
{{- range .Cards}}{{.}}{{else}}<p class="search-empty">No products found matching your search.</p>{{end -}}
</div>
</div></section>
{{- end -}}

{{- define "cartView" -}}
{{- if .Items -}}
<div class="cart-items">
{{- range .Items}}
<div class="cart-item" data-product-id="{{.ID}}">
<img src="{{.ImageURL}}" class="cart-item-image" alt="{{.Name}}">
<div class="cart-item-info"><h4 class="cart-item-title">{{.Name}}</h4><div class="cart-item-price">&#8377;{{.Price}}</div></div>
<div class="quantity-controls" data-product-id="{{.ID}}"><button class="btn-quantity" data-action="decrement">&minus;</button><span class="quantity-display">{{.Quantity}}</span><button class="btn-quantity" data-action="increment">+</button></div>
<div class="cart-item-total">&#8377;{{.LineTotal}}</div>
<button class="cart-item-remove" data-product-id="{{.ID}}">Remove</button>
</div>
{{- end}}
</div>
<div class="cart-summary">
<span class="cart-total-label">Total ({{.Count}} item(s))</span>
<span class="cart-total">&#8377;{{.Total}}</span>
<button class="btn btn-primary checkout-btn">Place Order</button>
</div>
{{- else -}}
<p class="empty-cart">Your cart is empty.</p>
{{- end -}}
{{- end -}}

{{- define "badge" -}}
<span class="cart-count">{{.}}</span>
{{- end -}}

{{- define "orders" -}}
{{- if .Orders -}}
{{- range .Orders}}
<div class="order-card">
<div class="order-header">
<div class="order-id">Order #BK{{.ID}}</div>
<div class="order-status status-{{.StatusClass}}">{{.Status}}</div>
</div>
<div class="order-items">
<img src="{{.ImageURL}}" alt="Product">
<div class="order-details">
<h4>{{.Title}}</h4>
<p>{{.ItemsLabel}}</p>
<p class="order-date">Ordered on {{.Date}}</p>
</div>
<div class="order-amount">&#8377;{{.Total}}</div>
</div>
</div>
{{- end}}
{{- else -}}
<p class="orders-empty">No orders found.</p>
{{- end -}}
{{- end -}}

{{- define "profile" -}}
<div class="profile-card">
<h3 class="profile-display-name">{{.FirstName}}</h3>
<p class="profile-display-email">{{.Email}}</p>
<div class="profile-details">
<p class="detail-name">{{.Name}}</p>
<p class="detail-email">{{.Email}}</p>
</div>
</div>
{{- end -}}

{{- define "notice" -}}
<div class="notice">{{.}}</div>
{{- end -}}
`
