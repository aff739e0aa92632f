package schema

// SchemaSQL contains the full database schema initialization script
const SchemaSQL = `
-- Tenancy Schema

-- 1. Organizations group stores under shared redemption policy
CREATE TABLE IF NOT EXISTS organizations (
    organization_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    owner_id UUID NOT NULL,
    organization_name VARCHAR(100) NOT NULL,
    allow_cross_store_redemption BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- 2. Merchants (tenants)
CREATE TABLE IF NOT EXISTS merchants (
    merchant_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    organization_id UUID REFERENCES organizations(organization_id) ON DELETE SET NULL,
    merchant_name VARCHAR(100) NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- 3. Stores (physical locations; single-store merchants have no organization)
CREATE TABLE IF NOT EXISTS stores (
    store_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    merchant_id UUID NOT NULL REFERENCES merchants(merchant_id) ON DELETE CASCADE,
    organization_id UUID REFERENCES organizations(organization_id) ON DELETE SET NULL,
    store_name VARCHAR(100) NOT NULL
);

-- 4. Staff scanning rights inside an organization.
-- An empty store_ids allowlist means every store in the organization.
CREATE TABLE IF NOT EXISTS staff_memberships (
    organization_id UUID NOT NULL REFERENCES organizations(organization_id) ON DELETE CASCADE,
    user_id UUID NOT NULL,
    active BOOLEAN NOT NULL DEFAULT TRUE,
    can_scan_codes BOOLEAN NOT NULL DEFAULT FALSE,
    store_ids UUID[] NOT NULL DEFAULT '{}',
    PRIMARY KEY (organization_id, user_id)
);

-- Wheel Schema

-- Prizes: quantity -1 means untracked stock
CREATE TABLE IF NOT EXISTS prizes (
    prize_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    merchant_id UUID NOT NULL REFERENCES merchants(merchant_id) ON DELETE CASCADE,
    prize_name VARCHAR(100) NOT NULL,
    probability_weight DOUBLE PRECISION NOT NULL DEFAULT 0,
    quantity INTEGER NOT NULL DEFAULT -1,
    copies_on_wheel INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS idx_prizes_merchant ON prizes(merchant_id);

CREATE TABLE IF NOT EXISTS wheel_settings (
    merchant_id UUID PRIMARY KEY REFERENCES merchants(merchant_id) ON DELETE CASCADE,
    unlucky_weight DOUBLE PRECISION NOT NULL DEFAULT 0,
    retry_weight DOUBLE PRECISION NOT NULL DEFAULT 0,
    max_wheel_segments INTEGER NOT NULL DEFAULT 12,
    coupon_ttl_seconds INTEGER NOT NULL DEFAULT 604800,
    redeemable_at_any_store BOOLEAN NOT NULL DEFAULT FALSE
);

-- Spin & Coupon Schema

CREATE TABLE IF NOT EXISTS spins (
    spin_id UUID PRIMARY KEY,
    merchant_id UUID NOT NULL REFERENCES merchants(merchant_id) ON DELETE CASCADE,
    store_id UUID NOT NULL REFERENCES stores(store_id) ON DELETE CASCADE,
    outcome VARCHAR(20) NOT NULL,
    prize_id UUID REFERENCES prizes(prize_id) ON DELETE SET NULL,
    client_key VARCHAR(255),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_spins_merchant_created ON spins(merchant_id, created_at);

-- Coupons copy organization scope and redemption policy at issuance
CREATE TABLE IF NOT EXISTS coupons (
    coupon_id UUID PRIMARY KEY,
    spin_id UUID NOT NULL REFERENCES spins(spin_id) ON DELETE CASCADE,
    merchant_id UUID NOT NULL REFERENCES merchants(merchant_id) ON DELETE CASCADE,
    organization_id UUID,
    won_at_store_id UUID NOT NULL,
    code VARCHAR(16) UNIQUE NOT NULL,
    prize_id UUID NOT NULL,
    prize_name VARCHAR(100) NOT NULL,
    expires_at TIMESTAMPTZ NOT NULL,
    redeemable_at_any_store BOOLEAN NOT NULL DEFAULT FALSE,
    used BOOLEAN NOT NULL DEFAULT FALSE,
    used_at TIMESTAMPTZ,
    redeemed_at_store_id UUID,
    redeemed_by_staff_id UUID,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_coupons_code ON coupons(code);
CREATE INDEX IF NOT EXISTS idx_coupons_merchant_used ON coupons(merchant_id, used);

-- Loyalty Schema

CREATE TABLE IF NOT EXISTS loyalty_clients (
    client_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    merchant_id UUID NOT NULL REFERENCES merchants(merchant_id) ON DELETE CASCADE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Append-only ledger: points is signed, balance is always SUM(points)
CREATE TABLE IF NOT EXISTS points_transactions (
    transaction_id UUID PRIMARY KEY,
    client_id UUID NOT NULL REFERENCES loyalty_clients(client_id) ON DELETE CASCADE,
    merchant_id UUID NOT NULL REFERENCES merchants(merchant_id) ON DELETE CASCADE,
    kind VARCHAR(20) NOT NULL,
    points INTEGER NOT NULL,
    note TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_points_client_created ON points_transactions(client_id, created_at);
`
