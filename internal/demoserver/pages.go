package demoserver

// Variant names. Every page carries a benign variant; pages that demonstrate
// deception additionally carry a phishing variant.
const (
	VariantBenign   = "benign"
	VariantPhishing = "phishing"
)

// PageVariant is one rendering of a page: the HTML served plus any headers.
type PageVariant struct {
	HTML        string
	ContentType string
	Headers     map[string]string
}

// PageDefinition holds all variants of a single page.
type PageDefinition struct {
	Path        string
	Description string
	Variants    map[string]PageVariant
}

// GetAllPages returns all demo page definitions.
func GetAllPages() []PageDefinition {
	return []PageDefinition{
		getHomePage(),
		getLoginPage(),
		getAccountPage(),
		getNewsPage(),
	}
}

// ===== HOME PAGE =====
func getHomePage() PageDefinition {
	return PageDefinition{
		Path:        "/",
		Description: "Storefront home; the phishing variant adds an urgency banner and a credential form",
		Variants: map[string]PageVariant{
			VariantBenign: {
				HTML: `<!DOCTYPE html>
<html>
<head>
    <title>Demo Shop</title>
</head>
<body>
    <h1>Demo Shop</h1>
    <nav>
        <a href="/">Home</a> |
        <a href="/login">Sign in</a> |
        <a href="/account">Account</a> |
        <a href="/news">News</a>
    </nav>
    <p>Quality goods at fair prices. Free shipping on orders over 50.</p>
</body>
</html>`,
				ContentType: "text/html",
				Headers: map[string]string{
					"X-Frame-Options":        "DENY",
					"X-Content-Type-Options": "nosniff",
				},
			},
			VariantPhishing: {
				HTML: `<!DOCTYPE html>
<html>
<head>
    <title>Urgent: Account Suspended - Verify Now</title>
</head>
<body>
    <h1 style="color:red">Your account has been suspended!</h1>
    <p>Unusual activity was detected. Verify your identity within 24 hours
    or your account will be permanently closed.</p>
    <form action="/verify" method="POST">
        <input type="email" name="email" placeholder="Email address">
        <input type="password" name="password" placeholder="Password">
        <input type="hidden" name="session" value="3fa85f64">
        <button type="submit">Verify Account</button>
    </form>
</body>
</html>`,
				ContentType: "text/html",
			},
		},
	}
}

// ===== LOGIN PAGE =====
func getLoginPage() PageDefinition {
	return PageDefinition{
		Path:        "/login",
		Description: "Sign-in form; the phishing variant imitates a payment brand and asks for the password twice",
		Variants: map[string]PageVariant{
			VariantBenign: {
				HTML: `<!DOCTYPE html>
<html>
<head>
    <title>Demo Shop - Sign in</title>
</head>
<body>
    <h1>Sign in</h1>
    <form action="/login" method="POST">
        <label>Email <input type="email" name="email"></label>
        <label>Password <input type="password" name="password"></label>
        <button type="submit">Sign in</button>
    </form>
    <p><a href="/">Back to shop</a></p>
</body>
</html>`,
				ContentType: "text/html",
				Headers: map[string]string{
					"X-Frame-Options": "DENY",
				},
			},
			VariantPhishing: {
				HTML: `<!DOCTYPE html>
<html>
<head>
    <title>PayPaI Security Check - Confirm Your Identity</title>
</head>
<body>
    <h1>Security Checkpoint</h1>
    <p>For your protection we need to confirm your login details.</p>
    <form action="/collect" method="POST">
        <input type="email" name="email" placeholder="Email">
        <input type="password" name="password" placeholder="Password">
        <input type="password" name="password_confirm" placeholder="Confirm password">
        <input type="hidden" name="campaign" value="cs-2291">
        <button type="submit">Confirm and Continue</button>
    </form>
    <p>Failure to confirm will result in limited account access.</p>
</body>
</html>`,
				ContentType: "text/html",
			},
		},
	}
}

// ===== ACCOUNT PAGE =====
func getAccountPage() PageDefinition {
	return PageDefinition{
		Path:        "/account",
		Description: "Account overview; the phishing variant requests card details",
		Variants: map[string]PageVariant{
			VariantBenign: {
				HTML: `<!DOCTYPE html>
<html>
<head>
    <title>Demo Shop - Your Account</title>
</head>
<body>
    <h1>Your Account</h1>
    <ul>
        <li><a href="/account">Orders</a></li>
        <li><a href="/account">Addresses</a></li>
        <li><a href="/account">Settings</a></li>
    </ul>
</body>
</html>`,
				ContentType: "text/html",
			},
			VariantPhishing: {
				HTML: `<!DOCTYPE html>
<html>
<head>
    <title>Verify Billing Information</title>
</head>
<body>
    <h1>Billing verification required</h1>
    <form action="/collect" method="POST">
        <input type="text" name="card" placeholder="Card number">
        <input type="text" name="expiry" placeholder="MM/YY">
        <input type="password" name="cvv" placeholder="CVV">
        <button type="submit">Update Billing</button>
    </form>
</body>
</html>`,
				ContentType: "text/html",
			},
		},
	}
}

// ===== NEWS PAGE =====
func getNewsPage() PageDefinition {
	return PageDefinition{
		Path:        "/news",
		Description: "Link-heavy article page, benign only",
		Variants: map[string]PageVariant{
			VariantBenign: {
				HTML: `<!DOCTYPE html>
<html>
<head>
    <title>Demo Shop - News</title>
</head>
<body>
    <h1>Shop News</h1>
    <p>Read about our latest arrivals and seasonal offers.</p>
    <ul>
        <li><a href="/news">Spring collection</a></li>
        <li><a href="/news">Warehouse move</a></li>
        <li><a href="/news">Holiday hours</a></li>
        <li><a href="/news">Gift cards</a></li>
        <li><a href="/">Back to shop</a></li>
    </ul>
</body>
</html>`,
				ContentType: "text/html",
			},
		},
	}
}
