/*
Package collateral computes collateralized borrows against an external
price oracle.

All monetary math runs on shopspring decimals at a fixed 18-place scale.
The oracle price is normalized to that scale, the collateral is valued
at the normalized price, multiplied by the leverage, and converted back
to token units through the same price so collateral and borrow stay in
consistent units:

	collateralValue = collateralAmount x price
	borrowValue     = collateralValue x leverage
	borrowAmount    = borrowValue / price

A borrow only succeeds when the treasury reserve, read fresh from the
token ledger on every call, covers the computed amount. There is no
repayment path in this engine; debt and the repay deadline are recorded
and left outstanding.
*/
package collateral
