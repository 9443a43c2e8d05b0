// internal/httpserver/messages.go
package httpserver

// User-facing strings. The product ships in Arabic; every error a page can
// render resolves to one of these unless the backend supplied its own
// message.
const (
	MsgUnauthorized    = "غير مصرح لك بالوصول. يرجى تسجيل الدخول مرة أخرى."
	MsgUnexpected      = "حدث خطأ غير متوقع"
	MsgBadCredentials  = "بيانات الدخول غير صحيحة"
	MsgNoAccessToken   = "فشل تسجيل الدخول: لم يتم استلام رمز الوصول"
	MsgInvoiceNotFound = "الفاتورة غير موجودة"
	MsgTenantNotFound  = "الشركة غير موجودة"
	MsgCustomersFailed = "فشل تحميل قائمة العملاء"
)
