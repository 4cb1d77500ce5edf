package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"vendor_hub_v1_202608/internal/controller"
	"vendor_hub_v1_202608/internal/middleware"
	"vendor_hub_v1_202608/internal/model"
)

// Controllers 路由需要的全部控制器
type Controllers struct {
	Auth        *controller.AuthController
	Vendor      *controller.VendorController
	AdminVendor *controller.AdminVendorController
	Product     *controller.ProductController
	Category    *controller.CategoryController
	Catalog     *controller.CatalogController
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, c Controllers) {
	// Swagger 文档
	// 访问 http://localhost:8080/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		// auth 公开
		auth := api.Group("/auth")
		{
			auth.POST("/register", c.Auth.Register)
			auth.POST("/login", c.Auth.Login)
			auth.POST("/refresh", c.Auth.Refresh)
		}

		// vendor 商家侧，登录即可走入驻流程；
		// 仪表盘和商品提交要求 vendor 角色（第 5 步提交后授予）
		vendor := api.Group("/vendor", middleware.JWTAuth())
		{
			vendor.GET("/register", c.Vendor.GetRegistration)
			vendor.POST("/register", c.Vendor.SubmitRegistrationStep)

			vendorOnly := vendor.Group("", middleware.RequireRole(model.RoleVendor, model.RoleAdmin))
			{
				vendorOnly.GET("/dashboard", c.Vendor.Dashboard)
				vendorOnly.GET("/offerings", c.Vendor.ListOfferings)
				vendorOnly.PATCH("/offerings/:id", c.Vendor.UpdateOffering)
				vendorOnly.DELETE("/offerings/:id", c.Vendor.DeleteOffering)
				vendorOnly.POST("/products", c.Vendor.SubmitProduct)
			}
		}

		// admin 管理端
		admin := api.Group("/admin", middleware.JWTAuth(), middleware.RequireRole(model.RoleAdmin))
		{
			admin.GET("/vendors", c.AdminVendor.ListVendors)
			admin.GET("/vendors/:id", c.AdminVendor.GetVendor)
			admin.PATCH("/vendors/:id", c.AdminVendor.ReviewVendor)
			admin.DELETE("/vendors/:id", c.AdminVendor.DeleteVendor)
		}

		adminWrite := []gin.HandlerFunc{middleware.JWTAuth(), middleware.RequireRole(model.RoleAdmin)}

		// products 读公开，写管理员
		products := api.Group("/products")
		{
			products.GET("", c.Product.ListProducts)
			products.GET("/:id", c.Product.GetProduct)

			products.POST("", append(adminWrite, c.Product.CreateProduct)...)
			products.PUT("/:id", append(adminWrite, c.Product.UpdateProduct)...)
			products.DELETE("/:id", append(adminWrite, c.Product.DeleteProduct)...)
			// 批量删除：集合 DELETE + 请求体 ids
			products.DELETE("", append(adminWrite, c.Product.DeleteProducts)...)
			products.POST("/:id/media", append(adminWrite, c.Product.UploadMedia)...)
			products.DELETE("/:id/media/:media_id", append(adminWrite, c.Product.DeleteMedia)...)
			products.POST("/ai-describe", append(adminWrite, c.Product.GenerateCopy)...)
		}

		// categories 读公开，写管理员
		categories := api.Group("/categories")
		{
			categories.GET("", c.Category.ListCategories)
			categories.GET("/:id", c.Category.GetCategory)

			categories.POST("", append(adminWrite, c.Category.CreateCategory)...)
			categories.PUT("/:id", append(adminWrite, c.Category.UpdateCategory)...)
			categories.DELETE("/:id", append(adminWrite, c.Category.DeleteCategory)...)
			categories.PUT("/:id/parent", append(adminWrite, c.Category.SetCategoryParent)...)
		}

		// 基础目录实体，读公开写管理员
		brands := api.Group("/brands")
		{
			brands.GET("", c.Catalog.ListBrands)
			brands.POST("", append(adminWrite, c.Catalog.CreateBrand)...)
			brands.PUT("/:id", append(adminWrite, c.Catalog.UpdateBrand)...)
			brands.DELETE("/:id", append(adminWrite, c.Catalog.DeleteBrand)...)
		}
		attributes := api.Group("/attributes")
		{
			attributes.GET("", c.Catalog.ListAttributes)
			attributes.POST("", append(adminWrite, c.Catalog.CreateAttribute)...)
			attributes.PUT("/:id", append(adminWrite, c.Catalog.UpdateAttribute)...)
			attributes.DELETE("/:id", append(adminWrite, c.Catalog.DeleteAttribute)...)
		}
		variants := api.Group("/variants")
		{
			variants.GET("", c.Catalog.ListVariants)
			variants.POST("", append(adminWrite, c.Catalog.CreateVariant)...)
			variants.PUT("/:id", append(adminWrite, c.Catalog.UpdateVariant)...)
			variants.DELETE("/:id", append(adminWrite, c.Catalog.DeleteVariant)...)
		}
		tags := api.Group("/tags")
		{
			tags.GET("", c.Catalog.ListTags)
			tags.POST("", append(adminWrite, c.Catalog.CreateTag)...)
			tags.PUT("/:id", append(adminWrite, c.Catalog.UpdateTag)...)
			tags.DELETE("/:id", append(adminWrite, c.Catalog.DeleteTag)...)
		}
		policies := api.Group("/policies")
		{
			policies.GET("", c.Catalog.ListPolicies)
			policies.POST("", append(adminWrite, c.Catalog.CreatePolicy)...)
			policies.PUT("/:id", append(adminWrite, c.Catalog.UpdatePolicy)...)
			policies.DELETE("/:id", append(adminWrite, c.Catalog.DeletePolicy)...)
		}
	}
}
