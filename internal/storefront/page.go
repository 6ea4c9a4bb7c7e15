package storefront

import "net/http"

// The page shell. Fragments are loaded into the mount points by the
// front-end glue; the server only guarantees their contracts.
const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Bity Kart</title>
</head>
<body>
<nav class="navbar">
<a class="brand" href="/">Bity Kart</a>
<input id="search-input" type="text" placeholder="Search products...">
<a class="nav-cart" href="#cart"><span id="cart-badge-mount"></span></a>
</nav>
<main>
<div id="page-home" class="page active"><div id="catalog-mount"></div></div>
<div id="page-cart" class="page"><div id="cart-mount"></div></div>
<div id="page-orders" class="page"><div class="orders-container" id="orders-mount"></div></div>
<div id="page-profile" class="page"><div id="profile-mount"></div></div>
</main>
</body>
</html>
`

func (s *Server) handleHome(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(pageHTML))
}
